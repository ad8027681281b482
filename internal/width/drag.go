package width

import (
	"fmt"
	"math"
)

// ApplyDrag transfers delta cells across divider k, the divider between
// column k and column k+1: column k grows by delta and column k+1 shrinks by
// the same amount. No other column is touched.
//
// With a minimum width configured, delta is clamped so that neither column
// falls below it and the unconsumed remainder is discarded. The delta
// actually transferred is returned.
func (s *Store) ApplyDrag(k int, delta float64) (float64, error) {
	if k < 0 || k >= len(s.widths)-1 {
		return 0, fmt.Errorf("%w: %d (columns: %d)", ErrDividerOutOfRange, k, len(s.widths))
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDelta, delta)
	}
	if minWidth := s.limits.MinWidth; minWidth > 0 {
		if delta > 0 {
			delta = math.Min(delta, math.Max(0, s.widths[k+1]-minWidth))
		} else if delta < 0 {
			delta = math.Max(delta, -math.Max(0, s.widths[k]-minWidth))
		}
	}
	if delta == 0 {
		return 0, nil
	}
	s.widths[k] += delta
	s.widths[k+1] -= delta
	return delta, nil
}

// DragSession converts absolute pointer positions of one drag gesture into
// per-event deltas. Only the position the divider has followed the pointer to
// is retained.
type DragSession struct {
	active  bool
	divider int
	lastX   float64
}

// Begin starts a gesture on divider at pointer position x.
func (d *DragSession) Begin(divider int, x float64) {
	d.active = true
	d.divider = divider
	d.lastX = x
}

// Move reports the pointer at x and returns the delta from the position the
// divider last followed the pointer to. ok is false if no gesture is active
// or there is nothing to move. The delta is not consumed until Advance is
// called.
func (d *DragSession) Move(x float64) (divider int, delta float64, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	delta = x - d.lastX
	if delta == 0 {
		return d.divider, 0, false
	}
	return d.divider, delta, true
}

// Advance consumes the part of the last delta that was applied. A clamped
// delta leaves the remainder outstanding, so the divider stays put until the
// pointer returns to it.
func (d *DragSession) Advance(applied float64) {
	if d.active {
		d.lastX += applied
	}
}

// End finishes the gesture. Deltas already applied are kept.
func (d *DragSession) End() {
	d.active = false
	d.divider = 0
	d.lastX = 0
}

// Active reports whether a gesture is in progress.
func (d *DragSession) Active() bool { return d.active }

// Divider returns the divider being dragged.
func (d *DragSession) Divider() int { return d.divider }
