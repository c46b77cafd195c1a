package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Answer    key.Binding
	Refresh   key.Binding
	Focus     key.Binding
	Submit    key.Binding
	Newline   key.Binding
	Blur      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "answers")),
	Answer:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "write answer")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "post")),
	Newline:   key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline")),
	Blur:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Answer, k.Refresh, k.Focus, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.Blur, k.Focus}
}
