package keys

import "github.com/charmbracelet/bubbles/key"

type resize struct {
	PrevDivider key.Binding
	NextDivider key.Binding
	Shrink      key.Binding
	Grow        key.Binding
	Reset       key.Binding
}

// Resize returns key bindings for resizing columns from the keyboard.
var Resize = resize{
	PrevDivider: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "prev divider"),
	),
	NextDivider: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next divider"),
	),
	Shrink: key.NewBinding(
		key.WithKeys("<", "H"),
		key.WithHelp("</H", "move divider left"),
	),
	Grow: key.NewBinding(
		key.WithKeys(">", "L"),
		key.WithHelp(">/L", "move divider right"),
	),
	Reset: key.NewBinding(
		key.WithKeys("="),
		key.WithHelp("=", "reset widths"),
	),
}
