package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Add, Edit, Delete     key.Binding
	Search                key.Binding
	MoveTodo, MoveDoing   key.Binding
	MoveDone              key.Binding
	Help, Quit            key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev lane")),
		Right:     key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next lane")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		MoveTodo:  key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "→ todo")),
		MoveDoing: key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "→ in progress")),
		MoveDone:  key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "→ done")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.MoveTodo, k.MoveDoing, k.MoveDone, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Add, k.Edit, k.Delete, k.Search},
		{k.MoveTodo, k.MoveDoing, k.MoveDone},
		{k.Help, k.Quit},
	}
}
