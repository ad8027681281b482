package table

import "github.com/muesli/ansi"

// measure returns the intrinsic width of column i: the widest of its header
// and its cells.
func (m *Model[T]) measure(i int) float64 {
	col := m.cols.Column(i)
	w := ansi.PrintableRuneWidth(col.HeaderText())
	for _, item := range m.items {
		w = max(w, ansi.PrintableRuneWidth(col.CellText(item)))
	}
	return float64(w)
}
