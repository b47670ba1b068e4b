package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Down   key.Binding
	Up     key.Binding
	Next   key.Binding
	Prev   key.Binding
	Pin    key.Binding
	Unpin  key.Binding
	Motion key.Binding
	Theme  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "fly forward")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "fly back")),
		Next:   key.NewBinding(key.WithKeys("]", "n"), key.WithHelp("]", "next milestone")),
		Prev:   key.NewBinding(key.WithKeys("[", "p"), key.WithHelp("[", "previous milestone")),
		Pin:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "pin")),
		Unpin:  key.NewBinding(key.WithKeys("esc", "u"), key.WithHelp("esc", "unpin")),
		Motion: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "motion")),
		Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Next, k.Pin, k.Unpin, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Next, k.Prev},
		{k.Pin, k.Unpin, k.Motion, k.Theme},
		{k.Help, k.Quit},
	}
}
