package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/kanban/internal/board"
	"github.com/Makepad-fr/kanban/internal/model"
	"github.com/Makepad-fr/kanban/internal/store"
	"github.com/Makepad-fr/kanban/internal/tui"
	"github.com/Makepad-fr/kanban/internal/ui"
)

// Options tune behaviour from root flags.
type Options struct {
	ConfigPath string // explicit config file, merged last
	Theme      string // overrides the configured theme
	Debug      bool   // debug-level logging
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "board", "ls", "add", "mv", "edit", "rm":
	default:
		ui.Fail("unknown subcommand: " + cmd)
		fmt.Fprintln(ui.Stderr)
		PrintHelp()
		return 2
	}

	// validate arguments before touching storage
	var (
		lane model.Lane
		id   model.Identifier
		err  error
	)
	switch cmd {
	case "add":
		if len(a) < 2 {
			ui.Fail("usage: kanban add <lane> <text...>")
			return 2
		}
		if lane, err = model.ParseLane(a[0]); err != nil {
			ui.Fail("add: " + err.Error())
			return 2
		}
	case "mv":
		if len(a) != 2 {
			ui.Fail("usage: kanban mv <id> <lane>")
			return 2
		}
		if id, err = parseID(a[0]); err != nil {
			ui.Fail("mv: " + err.Error())
			return 2
		}
		if lane, err = model.ParseLane(a[1]); err != nil {
			ui.Fail("mv: " + err.Error())
			return 2
		}
	case "edit":
		if len(a) < 1 {
			ui.Fail("usage: kanban edit <id> <text...>")
			return 2
		}
		if id, err = parseID(a[0]); err != nil {
			ui.Fail("edit: " + err.Error())
			return 2
		}
	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: kanban rm <id>")
			return 2
		}
		if id, err = parseID(a[0]); err != nil {
			ui.Fail("rm: " + err.Error())
			return 2
		}
	}

	env, err := setup(ctx, opt)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer env.Close()

	switch cmd {
	case "board":
		return doBoard(ctx, env)
	case "ls":
		return doList(env, strings.Join(a, " "))
	case "add":
		return doAdd(ctx, env, lane, strings.Join(a[1:], " "))
	case "mv":
		return doMove(ctx, env, id, lane)
	case "edit":
		return doEdit(ctx, env, id, strings.Join(a[1:], " "))
	default:
		return doRemove(ctx, env, id)
	}
}

func PrintHelp() {
	fmt.Fprintf(ui.Stdout, `kanban - a three-lane task board

Usage:
  kanban [flags] <subcommand> [args]

Subcommands:
  board                    Interactive board (TUI)
  ls [query]               Print every lane, optionally filtered
  add <lane> <text...>     Add a task (lane: todo, in-progress, done or 1-3)
  mv <id> <lane>           Move a task to another lane
  edit <id> <text...>      Replace a task's text
  rm <id>                  Remove a task

Flags:
  -config <file>           Extra config file (YAML)
  -theme <name>            classic, neon or mono
  -debug                   Verbose logging to the log file

Board keys:
  a add   e/enter edit   x delete   / search   alt+1/2/3 move   ? help   q quit

Examples:
  kanban add todo "Buy milk"
  kanban mv 42 done
  kanban ls milk
`)
}

// parseID accepts "42" or the stored form "task42".
func parseID(s string) (model.Identifier, error) {
	if strings.HasPrefix(s, store.IDPrefix) {
		return store.ParseLabel(s)
	}
	return store.ParseLabel(store.IDPrefix + s)
}

// -------------- subcommand impls ----------------

func doBoard(ctx context.Context, env *env) int {
	if err := tui.Run(ctx, env.store); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doList(env *env, query string) int {
	ui.Panel(boardLines(env.store.All(), query))
	return 0
}

func doAdd(ctx context.Context, env *env, lane model.Lane, text string) int {
	t, err := env.store.Add(ctx, lane, text)
	switch {
	case errors.Is(err, board.ErrEmptyInput):
		ui.Fail("add: empty text")
		return 2
	case errors.Is(err, board.ErrStorageUnavailable):
		ui.Fail("save: " + err.Error())
		return 1
	case err != nil:
		ui.Fail("add: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("added #%d to %s", t.ID, lane))
	return 0
}

func doMove(ctx context.Context, env *env, id model.Identifier, lane model.Lane) int {
	t, _, ok := env.store.Find(id)
	if !ok {
		return notFound(id)
	}
	if _, err := env.store.Move(ctx, id, t.Text, lane); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("moved #%d to %s", id, lane))
	return 0
}

func doEdit(ctx context.Context, env *env, id model.Identifier, text string) int {
	ok, err := env.store.UpdateText(ctx, id, text)
	if !ok {
		return notFound(id)
	}
	if err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("edited #%d", id))
	return 0
}

func doRemove(ctx context.Context, env *env, id model.Identifier) int {
	ok, err := env.store.Remove(ctx, id)
	if !ok {
		return notFound(id)
	}
	if err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("removed #%d", id))
	return 0
}

func notFound(id model.Identifier) int {
	ui.Fail(fmt.Sprintf("no task #%d", id))
	ui.Hint("Hint: run `kanban ls` to see task ids")
	return 2
}

// -------------- rendering helpers --------------

func boardLines(b model.Board, query string) []string {
	th := ui.Current()
	done, total := len(b.Lane(model.Done)), b.Len()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(th.Title, "Kanban"),
		ui.C(th.Todo, th.Bullet), len(b.Lane(model.Todo)),
		ui.C(th.InProgress, th.Bullet), len(b.Lane(model.InProgress)),
		ui.C(th.Done, th.SymDone), done,
	)
	lines := []string{header, ui.C(th.Muted, ui.ProgressBar(done, total, 28))}
	if query != "" {
		lines = append(lines, ui.C(th.Accent, "filter: "+query))
	}

	for _, l := range model.Lanes {
		lines = append(lines, "", ui.C(th.LaneANSI(l), l.Title()))
		lines = append(lines, laneLines(b.Lane(l), query)...)
	}
	lines = append(lines, "", ui.C(th.Muted, "Tip: add with `kanban add todo \"Buy milk\"`"))
	return lines
}

func laneLines(tasks []model.Task, query string) []string {
	shown := tui.DisplayOrder(tasks)
	texts := make([]string, len(shown))
	for i, t := range shown {
		texts[i] = t.Text
	}
	vis := tui.Visibility(texts, query)

	var out []string
	for i, t := range shown {
		if !vis[i] {
			continue
		}
		out = append(out, fmt.Sprintf("%s %s", ui.Dim(fmt.Sprintf("#%-3d", t.ID)), ui.Truncate(t.Text, 80)))
	}
	if len(out) == 0 {
		return []string{ui.C(ui.Current().Muted, "(none)")}
	}
	return out
}
