package table

// SetItemsMsg replaces the items displayed in a table.
type SetItemsMsg[T any] []T

// WidthsChangedMsg is emitted after the column widths change, whether through
// a divider being dragged, a resize, or the columns being reset.
type WidthsChangedMsg struct {
	Keys   []string
	Widths []float64
}
