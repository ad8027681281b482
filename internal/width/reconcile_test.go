package width

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_PreservesProportions(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for range 300 {
		decoration := r.Float64() * 20
		s := Init(randomSizings(r), decoration+1+r.Float64()*1000, decoration, nil)
		// perturb with a few drags so widths are no longer the initial split
		for range 3 {
			if s.Len() > 1 {
				_, err := s.ApplyDrag(r.IntN(s.Len()-1), r.Float64()*4-2)
				require.NoError(t, err)
			}
		}
		before := s.Widths()
		prevUsable := s.Available() - decoration
		newAvailable := decoration + 1 + r.Float64()*1000

		require.True(t, s.Reconcile(newAvailable, decoration))

		newUsable := newAvailable - decoration
		for i, w := range before {
			assert.InDelta(t, w/prevUsable, s.Width(i)/newUsable, 1e-9)
		}
		assert.Equal(t, newAvailable, s.Available())
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	s := Init([]Sizing{Fixed(7), Weight(1), Weight(3)}, 120, 4, nil)

	require.True(t, s.Reconcile(333, 4))
	first := s.Clone()

	require.True(t, s.Reconcile(333, 4))
	assert.True(t, first.Equal(s))
}

func TestReconcile_Degenerate(t *testing.T) {
	tests := []struct {
		name          string
		available     float64
		decoration    float64
		newAvailable  float64
		newDecoration float64
	}{
		{"previous usable width is zero", 10, 10, 100, 10},
		{"previous usable width is negative", 5, 10, 100, 10},
		{"new usable width is zero", 100, 10, 10, 10},
		{"new usable width is negative", 100, 10, 2, 10},
		{"new available width is nan", 100, 10, math.NaN(), 10},
		{"new available width is infinite", 100, 10, math.Inf(1), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Init(weights(1, 2), tt.available, tt.decoration, nil)
			before := s.Clone()

			assert.False(t, s.Reconcile(tt.newAvailable, tt.newDecoration))
			assert.True(t, before.Equal(s))
		})
	}
}

func TestReconcile_RecoversFromLastGoodGeometry(t *testing.T) {
	s := Init(weights(1, 1, 2), 400, 0, nil)

	// collapse to nothing, then recover: the rescale must be relative to
	// 400, the last geometry that was applied.
	assert.False(t, s.Reconcile(0, 0))
	assert.False(t, s.Reconcile(-20, 0))
	require.True(t, s.Reconcile(200, 0))

	assert.Equal(t, []float64{50, 50, 100}, s.Widths())
}

func TestReconcile_MinWidth(t *testing.T) {
	s := Init(weights(10, 190), 200, 0, nil, WithLimits(Limits{MinWidth: 10}))
	require.InDeltaSlice(t, []float64{10, 190}, s.Widths(), Tolerance)

	require.True(t, s.Reconcile(100, 0))

	assert.InDeltaSlice(t, []float64{10, 90}, s.Widths(), Tolerance)
	assert.InDelta(t, 100, s.Sum(), Tolerance)
}

func TestReconcile_MinWidthUnsatisfiable(t *testing.T) {
	s := Init(weights(10, 190), 200, 0, nil, WithLimits(Limits{MinWidth: 60}))
	before := s.Clone()

	assert.False(t, s.Reconcile(100, 0))
	assert.True(t, before.Equal(s))
}

func TestReconcile_Unclamped(t *testing.T) {
	s := Init(weights(1, 1), 100, 0, nil)
	_, err := s.ApplyDrag(0, -60)
	require.NoError(t, err)
	require.Equal(t, []float64{-10, 110}, s.Widths())

	require.True(t, s.Reconcile(200, 0))
	assert.Equal(t, []float64{-20, 220}, s.Widths())
}
