package width

import "slices"

// Tolerance is the drift tolerated between the sum of the widths plus the
// decoration and the available width.
const Tolerance = 1e-3

// Measurer supplies the intrinsic width of a WrapContent column.
type Measurer interface {
	Measure(i int) float64
}

// MeasureFunc adapts a function to a Measurer.
type MeasureFunc func(i int) float64

func (f MeasureFunc) Measure(i int) float64 { return f(i) }

// Limits bound column widths during drags and reconciliation. The zero value
// imposes no bounds: columns may shrink to zero or below.
type Limits struct {
	// MinWidth is the narrowest a column may become through a drag or a
	// reconciliation. Zero disables the bound.
	MinWidth float64
}

// Option configures a Store.
type Option func(*Store)

// WithLimits bounds column widths.
func WithLimits(limits Limits) Option {
	return func(s *Store) {
		s.limits = limits
	}
}

// Store holds the current width of each column, indexed identically to the
// column model. It is owned by a single goroutine: the one running the UI
// update loop.
type Store struct {
	widths []float64

	// geometry of the last successful allocation or reconciliation
	available  float64
	decoration float64

	limits Limits
}

// Init allocates initial widths. Fixed columns get their size, WrapContent
// columns get the width reported by measure, and the remaining space
// (available - decoration - fixed - measured) is split between weighted
// columns in proportion to their weights.
func Init(sizings []Sizing, available, decoration float64, measure Measurer, opts ...Option) *Store {
	s := &Store{
		widths:     make([]float64, len(sizings)),
		available:  available,
		decoration: decoration,
	}
	for _, fn := range opts {
		fn(s)
	}

	var (
		remaining   = available - decoration
		totalWeight float64
	)
	for i, sz := range sizings {
		switch sz.Kind() {
		case FixedSizing:
			s.widths[i] = sz.Value()
			remaining -= sz.Value()
		case WrapSizing:
			if measure != nil {
				s.widths[i] = measure.Measure(i)
			}
			remaining -= s.widths[i]
		case WeightSizing:
			totalWeight += sz.Value()
		}
	}
	if totalWeight == 0 {
		return s
	}
	for i, sz := range sizings {
		if sz.Kind() == WeightSizing {
			s.widths[i] = remaining * (sz.Value() / totalWeight)
		}
	}
	return s
}

// Len returns the number of columns.
func (s *Store) Len() int { return len(s.widths) }

// Width returns the width of column i.
func (s *Store) Width(i int) float64 { return s.widths[i] }

// Widths returns a copy of all widths.
func (s *Store) Widths() []float64 { return slices.Clone(s.widths) }

// Sum returns the total width of all columns.
func (s *Store) Sum() (sum float64) {
	for _, w := range s.widths {
		sum += w
	}
	return sum
}

// Available returns the available width of the last successful allocation or
// reconciliation.
func (s *Store) Available() float64 { return s.available }

// Decoration returns the decoration width of the last successful allocation or
// reconciliation.
func (s *Store) Decoration() float64 { return s.decoration }

// Limits returns the bounds applied to widths.
func (s *Store) Limits() Limits { return s.limits }

// Equal reports whether both stores hold bit-identical widths and geometry.
func (s *Store) Equal(other *Store) bool {
	return s.available == other.available &&
		s.decoration == other.decoration &&
		slices.Equal(s.widths, other.widths)
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	clone := *s
	clone.widths = slices.Clone(s.widths)
	return &clone
}
