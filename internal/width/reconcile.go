package width

import "math"

// Reconcile rescales the widths after the available width changes, preserving
// each column's fraction of the usable width (available minus decoration).
//
// Nothing is changed and false is returned when the previous usable width is
// not positive or the scale factor is not a finite positive number. The
// stored geometry is only advanced on success, so a run of degenerate events
// is followed by a rescale relative to the last good geometry.
func (s *Store) Reconcile(available, decoration float64) bool {
	prevUsable := s.available - decoration
	if prevUsable <= 0 {
		return false
	}
	scale := (available - decoration) / prevUsable
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return false
	}
	if scale == 1 {
		s.available = available
		s.decoration = decoration
		return true
	}

	scaled := make([]float64, len(s.widths))
	for i, w := range s.widths {
		scaled[i] = w * scale
	}
	if !s.limits.enforce(scaled) {
		return false
	}
	s.widths = scaled
	s.available = available
	s.decoration = decoration
	return true
}

// enforce raises any width below the minimum to the minimum, taking the
// shortfall from the other columns in proportion to their excess over the
// minimum. It returns false, leaving widths in an unspecified state, if the
// other columns cannot cover the shortfall.
func (l Limits) enforce(widths []float64) bool {
	if l.MinWidth <= 0 {
		return true
	}
	var shortfall, excess float64
	for _, w := range widths {
		if w < l.MinWidth {
			shortfall += l.MinWidth - w
		} else {
			excess += w - l.MinWidth
		}
	}
	if shortfall == 0 {
		return true
	}
	if excess < shortfall {
		return false
	}
	ratio := shortfall / excess
	for i, w := range widths {
		if w < l.MinWidth {
			widths[i] = l.MinWidth
		} else {
			widths[i] = w - (w-l.MinWidth)*ratio
		}
	}
	return true
}
