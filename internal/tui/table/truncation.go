package table

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

var defaultTruncationFunc = TruncateRight

// TruncationFunc shortens s to at most w cells, marking the cut with
// tailOrPrefix.
type TruncationFunc func(s string, w int, tailOrPrefix string) string

func TruncateRight(s string, w int, tail string) string {
	return truncate.StringWithTail(s, uint(w), tail)
}

// TruncateLeft keeps the end of s, which suits paths.
func TruncateLeft(s string, w int, prefix string) string {
	if runewidth.StringWidth(s) <= w {
		return s
	}
	avail := w - runewidth.StringWidth(prefix)
	if avail <= 0 {
		return runewidth.Truncate(prefix, max(w, 0), "")
	}
	var (
		runes = []rune(s)
		i     = len(runes)
		width int
	)
	for ; i > 0; i-- {
		rw := runewidth.RuneWidth(runes[i-1])
		if width+rw > avail {
			break
		}
		width += rw
	}
	return prefix + string(runes[i:])
}

func (m Model[T]) truncate(key, s string, w int) string {
	fn, ok := m.truncation[key]
	if !ok {
		fn = defaultTruncationFunc
	}
	return fn(s, w, ellipsis)
}
