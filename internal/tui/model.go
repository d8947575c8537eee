package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/kanban/internal/board"
	"github.com/Makepad-fr/kanban/internal/model"
	"github.com/Makepad-fr/kanban/internal/ui"
)

type mode int

const (
	browsing mode = iota
	adding
	editing
	searching
)

// Model is the Bubble Tea board: three lane columns, a cursor that arms
// the task it rests on, and inline inputs for add, edit and search.
type Model struct {
	ctx  context.Context
	ctl  *Controller
	keys keyMap
	help help.Model

	focus  model.Lane
	cursor [len(model.Lanes)]int

	mode   mode
	ti     textinput.Model // shared text input (used for add & edit)
	search textinput.Model
	editID model.Identifier

	width, height int
}

// New builds the board model around ctl.
func New(ctx context.Context, ctl *Controller) Model {
	m := Model{
		ctx:    ctx,
		ctl:    ctl,
		keys:   defaultKeys(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	m.help.Styles.ShortKey = helpStyle
	m.help.Styles.ShortDesc = helpStyle

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 200

	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "filter tasks..."
	m.search.SetValue(ctl.Query())

	m.hover()
	return m
}

// Run starts the interactive board on the alternate screen.
func Run(ctx context.Context, s *board.Store) error {
	p := tea.NewProgram(New(ctx, NewController(s)), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.help.Width = ws.Width
		return m, nil
	}
	km, isKey := msg.(tea.KeyMsg)

	// a notice blocks everything until acknowledged
	if isKey && m.ctl.Notice() != "" {
		m.ctl.DismissNotice()
		return m, nil
	}

	switch m.mode {
	case adding:
		return m.updateAdding(msg, km, isKey)
	case editing:
		return m.updateEditing(msg, km, isKey)
	case searching:
		return m.updateSearching(msg, km, isKey)
	}
	if !isKey {
		return m, nil
	}

	if km.Alt && km.Type == tea.KeyRunes {
		if a, ok := m.ctl.Armed(); ok {
			t, _, _ := m.ctl.store.Find(a.ID)
			_, _ = m.ctl.KeyPress(m.ctx, true, string(km.Runes), t.Text)
			m.clamp()
			m.hover()
		}
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Up):
		m.cursor[m.focus]--
	case key.Matches(km, m.keys.Down):
		m.cursor[m.focus]++
	case key.Matches(km, m.keys.Left):
		m.focus = model.Lanes[(int(m.focus)+len(model.Lanes)-1)%len(model.Lanes)]
	case key.Matches(km, m.keys.Right):
		m.focus = model.Lanes[(int(m.focus)+1)%len(model.Lanes)]
	case key.Matches(km, m.keys.Add):
		m.mode = adding
		m.ti.SetValue("")
		m.ti.Placeholder = "New task for " + m.focus.Title() + "..."
		cmd := m.ti.Focus()
		return m, cmd
	case key.Matches(km, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.mode = editing
			m.editID = t.ID
			m.ti.SetValue(t.Text)
			m.ti.CursorEnd()
			m.ti.Placeholder = "Edit task..."
			cmd := m.ti.Focus()
			return m, cmd
		}
	case key.Matches(km, m.keys.Delete):
		if t, ok := m.selected(); ok {
			_ = m.ctl.Delete(m.ctx, t.ID)
		}
	case key.Matches(km, m.keys.Search):
		m.mode = searching
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.clamp()
	m.hover()
	return m, nil
}

func (m Model) updateAdding(msg tea.Msg, km tea.KeyMsg, isKey bool) (tea.Model, tea.Cmd) {
	if isKey {
		switch km.String() {
		case "enter":
			if _, err := m.ctl.Submit(m.ctx, m.focus, m.ti.Value()); !errors.Is(err, board.ErrEmptyInput) {
				m.closeInput()
				m.cursor[m.focus] = 0 // newest task is on top
				m.clamp()
				m.hover()
			}
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateEditing(msg tea.Msg, km tea.KeyMsg, isKey bool) (tea.Model, tea.Cmd) {
	if isKey {
		if km.Alt && km.Type == tea.KeyRunes {
			// move the task being edited, taking the text as typed so far
			m.ctl.Hover(m.editID)
			if moved, _ := m.ctl.KeyPress(m.ctx, true, string(km.Runes), m.ti.Value()); moved {
				m.closeInput()
				m.clamp()
			}
			m.hover()
			return m, nil
		}
		switch km.String() {
		case "enter":
			_ = m.ctl.CommitEdit(m.ctx, m.editID, m.ti.Value())
			m.closeInput()
			return m, nil
		case "esc":
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateSearching(msg tea.Msg, km tea.KeyMsg, isKey bool) (tea.Model, tea.Cmd) {
	if isKey {
		switch km.String() {
		case "enter":
			m.mode = browsing
			m.search.Blur()
			return m, nil
		case "esc":
			m.mode = browsing
			m.search.Blur()
			m.search.SetValue("")
			m.ctl.SetQuery("")
			m.clamp()
			m.hover()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctl.SetQuery(m.search.Value())
	m.clamp()
	m.hover()
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
	m.editID = 0
}

// selected is the task under the cursor in the focused lane.
func (m Model) selected() (model.Task, bool) {
	tasks := m.ctl.Lane(m.focus)
	i := m.cursor[m.focus]
	if i < 0 || i >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[i], true
}

// clamp keeps every cursor inside its lane's visible tasks.
func (m *Model) clamp() {
	for _, l := range model.Lanes {
		n := len(m.ctl.Lane(l))
		if m.cursor[l] >= n {
			m.cursor[l] = n - 1
		}
		if m.cursor[l] < 0 {
			m.cursor[l] = 0
		}
	}
}

// hover arms whatever the cursor rests on.
func (m *Model) hover() {
	if t, ok := m.selected(); ok {
		m.ctl.Hover(t.ID)
		return
	}
	m.ctl.Disarm()
}

func (m Model) View() string {
	b := m.ctl.Board()
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Kanban"),
		lipgloss.NewStyle().Foreground(laneColor(model.Todo)).Render(model.Todo.Title()), len(b.Lane(model.Todo)),
		lipgloss.NewStyle().Foreground(laneColor(model.InProgress)).Render(model.InProgress.Title()), len(b.Lane(model.InProgress)),
		successStyle.Render(model.Done.Title()), len(b.Lane(model.Done)),
	)
	if q := m.ctl.Query(); q != "" && m.mode != searching {
		header += "   " + accentStyle.Render("filter: "+q)
	}

	colWidth := (m.width - 2) / len(model.Lanes)
	if colWidth < 16 {
		colWidth = 16
	}
	colWidth -= 4 // border + padding

	cols := make([]string, 0, len(model.Lanes))
	for _, l := range model.Lanes {
		cols = append(cols, m.renderLane(l, colWidth))
	}

	parts := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, cols...)}
	switch m.mode {
	case adding, editing:
		title := "Add to " + m.focus.Title()
		if m.mode == editing {
			title = fmt.Sprintf("Edit task #%d", m.editID)
		}
		parts = append(parts, inputBar().Render(title+"\n"+m.ti.View()))
	case searching:
		parts = append(parts, inputBar().Render(m.search.View()))
	}
	if s := m.ctl.Status(); s != "" {
		parts = append(parts, mutedStyle.Render(s))
	}
	parts = append(parts, m.help.View(m.keys))
	view := strings.Join(parts, "\n")

	if n := m.ctl.Notice(); n != "" {
		box := noticeBox().Render(errorStyle.Render(n) + "\n\n" + mutedStyle.Render("press any key"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return view
}

func (m Model) renderLane(l model.Lane, width int) string {
	focused := l == m.focus
	heading := lipgloss.NewStyle().Bold(true).Foreground(laneColor(l)).
		Render(fmt.Sprintf("%d %s", int(l)+1, l.Title()))

	lines := []string{heading, ""}
	tasks := m.ctl.Lane(l)
	armed, isArmed := m.ctl.Armed()
	if len(tasks) == 0 {
		lines = append(lines, mutedStyle.Render("(empty)"))
	}
	for i, t := range tasks {
		mark := " "
		if isArmed && armed.ID == t.ID {
			mark = armedMark
		}
		text := ui.Truncate(t.Text, width-4)
		if text == "" {
			text = mutedStyle.Render("(blank)")
		}
		line := fmt.Sprintf("%s %s", mark, text)
		if focused && i == m.cursor[l] {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return columnStyle(l, focused, width).Render(strings.Join(lines, "\n"))
}
