package table

import "math"

// cellWidths rounds fractional column widths to whole cells. Rather than
// rounding each width, the running total is rounded, so the rounded widths
// add up to the rounded total and each column edge lands on the cell nearest
// its exact position.
func cellWidths(widths []float64) []int {
	var (
		cells = make([]int, len(widths))
		exact float64
		prev  int
	)
	for i, w := range widths {
		exact += w
		edge := int(math.Round(exact))
		cells[i] = edge - prev
		prev = edge
	}
	return cells
}

// dividerAt returns the index of the column divider at x, where x is relative
// to the left edge of a row's content. Cells narrower than zero are rendered
// as zero width and are treated as such here. A divider without any width
// can still be grabbed at the cell where it would be.
func dividerAt(x, padding int, cells []int, fullWidth func(int) int) (int, bool) {
	pos := padding
	for i := 0; i < len(cells)-1; i++ {
		pos += max(cells[i], 0)
		fw := fullWidth(i)
		if fw <= 0 {
			if x == pos {
				return i, true
			}
			continue
		}
		if x >= pos && x < pos+fw {
			return i, true
		}
		pos += fw
	}
	return 0, false
}
