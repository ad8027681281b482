package table

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/coltab/coltab/internal/tui/keys"
)

// KeyMap defines keybindings. It satisfies to the help.KeyMap interface, which
// is used to render the menu.
type KeyMap struct {
	LineUp      key.Binding
	LineDown    key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	GotoTop     key.Binding
	GotoBottom  key.Binding
	PrevDivider key.Binding
	NextDivider key.Binding
	Shrink      key.Binding
	Grow        key.Binding
	Reset       key.Binding
}

// DefaultKeyMap returns a default set of keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LineUp:      keys.Navigation.LineUp,
		LineDown:    keys.Navigation.LineDown,
		PageUp:      keys.Navigation.PageUp,
		PageDown:    keys.Navigation.PageDown,
		GotoTop:     keys.Navigation.GotoTop,
		GotoBottom:  keys.Navigation.GotoBottom,
		PrevDivider: keys.Resize.PrevDivider,
		NextDivider: keys.Resize.NextDivider,
		Shrink:      keys.Resize.Shrink,
		Grow:        keys.Resize.Grow,
		Reset:       keys.Resize.Reset,
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LineUp, k.LineDown, k.NextDivider, k.Shrink, k.Grow}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LineUp, k.LineDown, k.PageUp, k.PageDown, k.GotoTop, k.GotoBottom},
		{k.PrevDivider, k.NextDivider, k.Shrink, k.Grow, k.Reset},
	}
}
