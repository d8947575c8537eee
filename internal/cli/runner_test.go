package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/Makepad-fr/kanban/internal/model"
	"github.com/Makepad-fr/kanban/internal/store/jsonstore"
	"github.com/Makepad-fr/kanban/internal/ui"
)

type harness struct {
	dir            string
	stdout, stderr *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	t.Setenv("KANBAN_STORAGE_DIR", dir)

	h := &harness{dir: dir, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	oldOut, oldErr := ui.Stdout, ui.Stderr
	ui.Stdout, ui.Stderr = h.stdout, h.stderr
	t.Cleanup(func() { ui.Stdout, ui.Stderr = oldOut, oldErr })
	return h
}

func (h *harness) run(args ...string) int {
	h.stdout.Reset()
	h.stderr.Reset()
	return Run(context.Background(), args, Options{Theme: "mono"})
}

func (h *harness) board(t *testing.T) model.Board {
	t.Helper()
	s, _ := jsonstore.New(h.dir, "")
	b, found, err := s.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	return b
}

var addedID = regexp.MustCompile(`added #(\d+)`)

func (h *harness) add(t *testing.T, lane, text string) string {
	t.Helper()
	if code := h.run("add", lane, text); code != 0 {
		t.Fatalf("add exit %d: %s", code, h.stderr)
	}
	m := addedID.FindStringSubmatch(h.stdout.String())
	if m == nil {
		t.Fatalf("no id in %q", h.stdout)
	}
	return m[1]
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)
	cases := [][]string{
		{},
		{"nope"},
		{"add", "todo"},
		{"add", "later", "x"},
		{"mv", "1"},
		{"mv", "x", "done"},
		{"rm"},
		{"edit"},
	}
	for _, args := range cases {
		if code := h.run(args...); code != 2 {
			t.Errorf("%v: exit %d, want 2", args, code)
		}
	}
}

func TestAddListMoveEditRemove(t *testing.T) {
	h := newHarness(t)

	id := h.add(t, "todo", "Buy milk")
	h.add(t, "2", "Call Bob")

	if code := h.run("ls", "milk"); code != 0 {
		t.Fatalf("ls exit %d", code)
	}
	if out := h.stdout.String(); !strings.Contains(out, "#"+id) || strings.Contains(out, "Call Bob") {
		t.Fatalf("ls filter:\n%s", out)
	}

	if code := h.run("mv", "task"+id, "done"); code != 0 {
		t.Fatalf("mv exit %d: %s", code, h.stderr)
	}
	b := h.board(t)
	if len(b.Lane(model.Todo)) != 0 || len(b.Lane(model.Done)) != 1 || b.Lane(model.Done)[0].Text != "Buy milk" {
		t.Fatalf("after mv: %+v", b)
	}

	if code := h.run("edit", id, "Buy", "oat", "milk"); code != 0 {
		t.Fatalf("edit exit %d", code)
	}
	if got := h.board(t).Lane(model.Done)[0].Text; got != "Buy oat milk" {
		t.Fatalf("after edit: %q", got)
	}

	if code := h.run("rm", id); code != 0 {
		t.Fatalf("rm exit %d", code)
	}
	if h.board(t).Len() != 1 {
		t.Fatal("rm did not remove exactly one task")
	}
}

func TestAddEmptyText(t *testing.T) {
	h := newHarness(t)
	if code := h.run("add", "todo", ""); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if !strings.Contains(h.stderr.String(), "empty") {
		t.Fatalf("stderr: %s", h.stderr)
	}
}

func TestAddKeepsSpaces(t *testing.T) {
	h := newHarness(t)
	h.add(t, "todo", "  indented")
	if got := h.board(t).Lane(model.Todo); len(got) != 1 || got[0].Text != "  indented" {
		t.Fatalf("todo lane: %+v", got)
	}
}

func TestUnknownID(t *testing.T) {
	h := newHarness(t)
	for _, args := range [][]string{{"rm", "5"}, {"mv", "5", "done"}, {"edit", "5", "x"}} {
		if code := h.run(args...); code != 2 {
			t.Errorf("%v: exit %d, want 2", args, code)
		}
		if !strings.Contains(h.stderr.String(), "no task #5") {
			t.Errorf("%v: stderr %q", args, h.stderr)
		}
	}
}

func TestFirstRunCreatesEmptyBoard(t *testing.T) {
	h := newHarness(t)
	if code := h.run("ls"); code != 0 {
		t.Fatalf("ls exit %d", code)
	}
	if _, err := os.Stat(filepath.Join(h.dir, "tasks.json")); err != nil {
		t.Fatalf("default board not saved: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "(none)") {
		t.Fatalf("expected empty lanes:\n%s", h.stdout)
	}
}

func TestMemoryBackend(t *testing.T) {
	h := newHarness(t)
	t.Setenv("KANBAN_STORAGE_BACKEND", "memory")
	h.add(t, "done", "ephemeral")
	if _, err := os.Stat(filepath.Join(h.dir, "tasks.json")); !os.IsNotExist(err) {
		t.Fatalf("memory backend wrote a file: %v", err)
	}
}

func TestParseID(t *testing.T) {
	for in, want := range map[string]model.Identifier{"7": 7, "task7": 7, "100": 100} {
		got, err := parseID(in)
		if err != nil || got != want {
			t.Errorf("parseID(%q) = %d, %v", in, got, err)
		}
	}
	for _, in := range []string{"", "x", "task", "-3"} {
		if _, err := parseID(in); err == nil {
			t.Errorf("parseID(%q) should fail", in)
		}
	}
}
