// Package width allocates and maintains the widths of table columns: the
// initial split of the available width, proportional rescaling when the
// available width changes, and transfers between neighbouring columns when a
// divider is dragged.
package width

import (
	"fmt"
	"math"
)

// SizingKind identifies how a column derives its initial width.
type SizingKind int

const (
	WeightSizing SizingKind = iota
	FixedSizing
	WrapSizing
)

func (k SizingKind) String() string {
	switch k {
	case WeightSizing:
		return "weight"
	case FixedSizing:
		return "fixed"
	case WrapSizing:
		return "wrap"
	default:
		return fmt.Sprintf("SizingKind(%d)", int(k))
	}
}

// Sizing is the policy for a column's initial width: a proportional weight,
// a fixed number of cells, or the width of its content.
type Sizing struct {
	kind  SizingKind
	value float64
}

// Weight sizes a column in proportion to w relative to the other weighted
// columns.
func Weight(w float64) Sizing { return Sizing{kind: WeightSizing, value: w} }

// Fixed sizes a column to exactly n cells.
func Fixed(n float64) Sizing { return Sizing{kind: FixedSizing, value: n} }

// WrapContent sizes a column to its measured content.
func WrapContent() Sizing { return Sizing{kind: WrapSizing} }

func (s Sizing) Kind() SizingKind { return s.kind }

// Value returns the weight or the fixed size. It is zero for WrapContent.
func (s Sizing) Value() float64 { return s.value }

func (s Sizing) String() string {
	if s.kind == WrapSizing {
		return s.kind.String()
	}
	return fmt.Sprintf("%s=%g", s.kind, s.value)
}

func (s Sizing) validate() error {
	switch s.kind {
	case WeightSizing, FixedSizing:
		if math.IsNaN(s.value) || math.IsInf(s.value, 0) || s.value <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidSize, s)
		}
	case WrapSizing:
	default:
		return fmt.Errorf("%w: unknown sizing kind %d", ErrInvalidSize, s.kind)
	}
	return nil
}
