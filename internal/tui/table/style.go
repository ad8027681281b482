package table

import "github.com/charmbracelet/lipgloss"

// RowStyle styles a header or body row.
type RowStyle struct {
	Background lipgloss.TerminalColor
}

// DividerStyle styles the divider between two columns or two rows. For a
// column divider thickness and padding are measured in cells; for a row
// divider in lines.
type DividerStyle struct {
	Thickness int
	Padding   int
	Color     lipgloss.TerminalColor
}

// FullWidth returns the space the divider occupies: its thickness plus the
// padding either side.
func (s DividerStyle) FullWidth() int {
	return s.Thickness + 2*s.Padding
}

// TableStyle styles the table chrome.
type TableStyle struct {
	// BorderThickness is either zero, for no border, or one.
	BorderThickness   int
	BorderColor       lipgloss.TerminalColor
	Border            lipgloss.Border
	Background        lipgloss.TerminalColor
	HorizontalPadding int
}

func (s TableStyle) borderWidth() int {
	return min(max(s.BorderThickness, 0), 1)
}

// Styles is the complete visual configuration of a table.
type Styles[T any] struct {
	Header RowStyle
	Cursor RowStyle
	// FocusedDivider colors the column divider selected for keyboard
	// resizing.
	FocusedDivider lipgloss.TerminalColor
	Table          TableStyle
	Row            func(index int, item T) RowStyle
	RowDivider     func(index int) DividerStyle
	ColumnDivider  func(index int) DividerStyle
}

var (
	DefaultDividerColor = lipgloss.AdaptiveColor{Light: "250", Dark: "240"}
	DefaultBorderColor  = lipgloss.AdaptiveColor{Light: "245", Dark: "244"}
	DefaultCursorColor  = lipgloss.AdaptiveColor{Light: "254", Dark: "237"}
	DefaultFocusColor   = lipgloss.AdaptiveColor{Light: "33", Dark: "39"}
)

// DefaultStyles returns the default styles: a rounded border, one cell of
// padding, a line beneath the header and a single line between columns.
func DefaultStyles[T any]() Styles[T] {
	return Styles[T]{
		Cursor:         RowStyle{Background: DefaultCursorColor},
		FocusedDivider: DefaultFocusColor,
		Table: TableStyle{
			BorderThickness:   1,
			BorderColor:       DefaultBorderColor,
			Border:            lipgloss.RoundedBorder(),
			HorizontalPadding: 1,
		},
		Row: func(int, T) RowStyle { return RowStyle{} },
		RowDivider: func(index int) DividerStyle {
			if index == 0 {
				return DividerStyle{Thickness: 1, Color: DefaultDividerColor}
			}
			return DividerStyle{}
		},
		ColumnDivider: func(int) DividerStyle {
			return DividerStyle{Thickness: 1, Color: DefaultDividerColor}
		},
	}
}

// DecorationWidth returns the width consumed by everything within a row
// other than cells: the dividers between n columns and the horizontal
// padding either side.
func DecorationWidth(n int, columnDivider func(int) DividerStyle, table TableStyle) int {
	var width int
	for i := 0; i < n-1; i++ {
		width += columnDivider(i).FullWidth()
	}
	return width + 2*table.HorizontalPadding
}
