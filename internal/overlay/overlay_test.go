package overlay

import (
	"testing"

	"harmonic/internal/digit"
	"harmonic/internal/grid"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, values [][]int) grid.Grid {
	t.Helper()
	g, err := grid.FromRows(values)
	require.NoError(t, err)
	return g
}

func TestOverlay_Diagonal(t *testing.T) {
	a := mustRows(t, [][]int{{1, 0}, {0, 1}})
	b := mustRows(t, [][]int{{1, 1}, {1, 1}})

	res := Overlay(a, b, nil)

	assert.Equal(t, []Point{{0, 0}, {1, 1}}, res.InteractionPoints)
	assert.Equal(t, [][2]int{{0, 0}, {1, 1}}, res.Pairs())
	assert.Equal(t, Aggregate{TotalCells: 4, ActiveCells: 2, SumLeft: 2, SumRight: 4}, res.Aggregate)
	assert.Equal(t, 0.5, res.Density())
}

func TestOverlay_IdenticalGrids(t *testing.T) {
	g := grid.MustGenerate(5, 7, grid.Difference(digit.MustReducer(9, digit.AllowZero())))
	res := Overlay(g, g, nil)

	assert.Equal(t, g.Count(Positive), res.Aggregate.ActiveCells)
	assert.Equal(t, g.Size(), res.Aggregate.TotalCells)
	assert.Equal(t, g.Sum(), res.Aggregate.SumLeft)
	assert.Equal(t, g.Sum(), res.Aggregate.SumRight)
}

func TestOverlay_DifferentSizesUseSharedRegion(t *testing.T) {
	a := mustRows(t, [][]int{
		{1, 1, 1, 5},
		{1, 1, 1, 5},
	})
	b := mustRows(t, [][]int{
		{2, 0},
		{0, 2},
		{9, 9},
	})

	res := Overlay(a, b, nil)

	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 2, res.Cols)
	assert.Equal(t, 4, res.Aggregate.TotalCells)
	assert.Equal(t, 4, res.Aggregate.SumLeft, "sum covers the overlay region only")
	assert.Equal(t, 4, res.Aggregate.SumRight, "sum covers the overlay region only")
	for _, p := range res.InteractionPoints {
		assert.True(t, p.Row >= 0 && p.Row < 2 && p.Col >= 0 && p.Col < 2, "point %v outside region", p)
	}
}

func TestOverlay_BoundsProperty(t *testing.T) {
	r := digit.Default()
	for ra := 1; ra <= 4; ra++ {
		for ca := 1; ca <= 4; ca++ {
			a := grid.MustGenerate(ra, ca, grid.Sum(r))
			b := grid.MustGenerate(5-ra, 5-ca, grid.Product(r))
			res := Overlay(a, b, nil)

			maxR, maxC := min(ra, 5-ra), min(ca, 5-ca)
			assert.Equal(t, maxR*maxC, res.Aggregate.TotalCells)
			for _, p := range res.InteractionPoints {
				assert.Less(t, p.Row, maxR)
				assert.Less(t, p.Col, maxC)
			}
		}
	}
}

func TestOverlay_DoesNotMutateInputs(t *testing.T) {
	a := mustRows(t, [][]int{{1, 2}, {3, 4}})
	b := mustRows(t, [][]int{{0, 2}, {3, 0}})
	before := [2][][]int{a.Values(), b.Values()}

	res := Overlay(a, b, nil)

	if diff := cmp.Diff(before[0], a.Values()); diff != "" {
		t.Errorf("left grid mutated (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(before[1], b.Values()); diff != "" {
		t.Errorf("right grid mutated (-before +after):\n%s", diff)
	}
	assert.True(t, res.Left.Equal(a))
	assert.True(t, res.Right.Equal(b))
}

func TestOverlay_CustomPredicates(t *testing.T) {
	a := mustRows(t, [][]int{{-1, 3, 9}})
	b := mustRows(t, [][]int{{-2, 6, 9}})

	assert.Equal(t, []Point{{0, 1}, {0, 2}}, Overlay(a, b, Positive).InteractionPoints)
	assert.Equal(t, []Point{{0, 0}, {0, 1}, {0, 2}}, Overlay(a, b, NonZero).InteractionPoints)
	assert.Equal(t, []Point{{0, 2}}, Overlay(a, b, AtLeast(9)).InteractionPoints)
	assert.Equal(t, []Point{{0, 1}, {0, 2}}, Overlay(a, b, InSet(3, 6, 9)).InteractionPoints)
}

func TestOverlay_ZeroGrid(t *testing.T) {
	a := grid.MustGenerate(2, 2, grid.Index())
	res := Overlay(a, grid.Grid{}, nil)

	assert.Empty(t, res.InteractionPoints)
	assert.Equal(t, 0, res.Aggregate.TotalCells)
	assert.Equal(t, 0.0, res.Density())
	assert.True(t, res.Mask().IsZero())
}

func TestResult_Mask(t *testing.T) {
	a := mustRows(t, [][]int{{1, 0, 1}, {0, 1, 0}})
	b := mustRows(t, [][]int{{1, 1, 1}, {1, 1, 1}})

	res := Overlay(a, b, nil)
	assert.Equal(t, [][]int{{1, 0, 1}, {0, 1, 0}}, res.Mask().Values())
	assert.True(t, res.IsInteraction(1, 1))
	assert.False(t, res.IsInteraction(1, 0))
}
