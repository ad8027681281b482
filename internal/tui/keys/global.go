package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type global struct {
	ToggleColumn key.Binding
	Quit         key.Binding
	Help         key.Binding
}

var Global = global{
	ToggleColumn: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle first column"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "exit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}
