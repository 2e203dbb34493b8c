package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"harmonic/internal/config"
	"harmonic/internal/digit"
	"harmonic/internal/grid"
	"harmonic/internal/overlay"
	"harmonic/internal/pattern"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEngine(t *testing.T, mutate func(*config.Config)) *Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

func TestScenario_ReduceKeepsNine(t *testing.T) {
	e := newEngine(t, nil)
	assert.Equal(t, 9, e.ReduceDigit(27))

	got, err := e.ReduceDigitWith(27, 9, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, got)
}

func TestScenario_TrinityMatch(t *testing.T) {
	e := newEngine(t, func(c *config.Config) { c.Patterns.LoadDefaults = false })
	require.NoError(t, e.RegisterPattern("trinity", []int{3, 3, 3}))

	assert.Equal(t, []string{"trinity"}, e.FindMatchingPatterns([]int{1, 3, 3, 3, 7}))
}

func TestScenario_GenerateGrid(t *testing.T) {
	e := newEngine(t, nil)
	g, err := e.GenerateGrid(2, 2, func(r, c int) int { return r + c })
	require.NoError(t, err)

	if diff := cmp.Diff([][]int{{0, 1}, {1, 2}}, g.Values()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestScenario_OverlayDiagonal(t *testing.T) {
	e := newEngine(t, nil)
	res, err := e.OverlayGrids([][]int{{1, 0}, {0, 1}}, [][]int{{1, 1}, {1, 1}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []overlay.Point{{Row: 0, Col: 0}, {Row: 1, Col: 1}}, res.InteractionPoints)
	assert.Equal(t, 2, res.Aggregate.ActiveCells)
	assert.Equal(t, 4, res.Aggregate.TotalCells)
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 9, e.Reducer().Base())
	assert.Equal(t, len(pattern.DefaultCatalog()), e.Registry().Len())
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Reducer.Base = 0
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_CustomPatterns(t *testing.T) {
	e := newEngine(t, func(c *config.Config) {
		c.Patterns.Custom = []config.PatternSpec{
			{Name: "lucky", Sequence: []int{7, 7}, Label: "Lucky"},
			{Name: "trinity", Sequence: []int{3, 3}, Overwrite: true},
			{Name: "portal", Sequence: []int{1, 4}, Gateway: true, Category: "custom"},
		}
	})

	lucky, ok := e.Pattern("lucky")
	require.True(t, ok)
	assert.Equal(t, pattern.CategoryRepeat, lucky.Category)
	assert.Equal(t, "Lucky", lucky.Label)

	trinity, ok := e.Pattern("trinity")
	require.True(t, ok)
	assert.Equal(t, []int{3, 3}, trinity.Sequence)

	portal, ok := e.Pattern("portal")
	require.True(t, ok)
	assert.True(t, portal.IsGateway)
	assert.Equal(t, pattern.CategoryCustom, portal.Category)
	assert.True(t, e.AttributesFor(4).IsGateway, "custom gateway feeds the mapper")
}

func TestNew_CustomPatternErrors(t *testing.T) {
	tests := []struct {
		name string
		spec config.PatternSpec
		want error
	}{
		{"duplicate without overwrite", config.PatternSpec{Name: "vortex", Sequence: []int{1}}, pattern.ErrDuplicateName},
		{"digit out of range", config.PatternSpec{Name: "big", Sequence: []int{12}}, pattern.ErrInvalidPattern},
		{"unknown category", config.PatternSpec{Name: "odd", Sequence: []int{1}, Category: "mystic"}, digit.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Patterns.Custom = []config.PatternSpec{tt.spec}
			_, err := New(cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestReducerFromConfig(t *testing.T) {
	five := 5
	tests := []struct {
		name string
		cfg  config.ReducerConfig
		n    int
		want int
	}{
		{"default", config.ReducerConfig{Base: 9}, 18, 9},
		{"replacement", config.ReducerConfig{Base: 9, ZeroReplacement: &five}, 18, 5},
		{"allow zero", config.ReducerConfig{Base: 9, AllowZero: true}, 18, 0},
		{"base 7", config.ReducerConfig{Base: 7}, 15, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ReducerFromConfig(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Reduce(tt.n))
		})
	}
}

func TestRegistryOperations(t *testing.T) {
	e := newEngine(t, nil)
	before := len(e.Patterns())

	require.NoError(t, e.RegisterPattern("seven", []int{7}, pattern.WithLabel("Seven")))
	assert.Len(t, e.Patterns(), before+1)
	assert.ErrorIs(t, e.RegisterPattern("seven", []int{7}), pattern.ErrDuplicateName)

	assert.True(t, e.UnregisterPattern("seven"))
	assert.False(t, e.UnregisterPattern("seven"))

	_, ok := e.Pattern("seven")
	assert.False(t, ok)
}

func TestMatchNumber(t *testing.T) {
	e := newEngine(t, nil)
	assert.Equal(t, []string{"vortex"}, e.MatchNumber(124875))
	assert.Equal(t, []string{"gateway"}, e.MatchNumber(-369))
}

func TestLocatePatterns(t *testing.T) {
	e := newEngine(t, func(c *config.Config) { c.Patterns.LoadDefaults = false })
	require.NoError(t, e.RegisterPattern("pair", []int{1, 8}))

	matches := e.LocatePatterns([]int{1, 8, 0, 1, 8})
	require.Len(t, matches, 1)
	assert.Equal(t, []int{0, 3}, matches[0].Offsets)
}

func TestGenerateFormulaGrid(t *testing.T) {
	e := newEngine(t, nil)

	g, err := e.GenerateFormulaGrid(2, 3, "sum")
	require.NoError(t, err)
	assert.Equal(t, [][]int{{9, 1, 2}, {1, 2, 3}}, g.Values())

	_, err = e.GenerateFormulaGrid(2, 2, "nope")
	assert.ErrorIs(t, err, grid.ErrUnknownFormula)
}

func TestGenerateGrid_MaxCells(t *testing.T) {
	e := newEngine(t, func(c *config.Config) { c.Grid.MaxCells = 10 })

	_, err := e.GenerateGrid(4, 4, grid.Index())
	assert.ErrorIs(t, err, grid.ErrTooLarge)

	_, err = e.GenerateGrid(0, 4, grid.Index())
	assert.ErrorIs(t, err, digit.ErrInvalidArgument)
}

func TestGenerateGrids(t *testing.T) {
	e := newEngine(t, func(c *config.Config) { c.Grid.Workers = 2 })
	sum, err := e.Formula("sum")
	require.NoError(t, err)

	grids, err := e.GenerateGrids(context.Background(), []grid.Spec{
		{Name: "a", Rows: 1, Cols: 2, Cell: grid.Index()},
		{Name: "b", Rows: 2, Cols: 1, Cell: sum},
	})
	require.NoError(t, err)
	require.Len(t, grids, 2)
	assert.Equal(t, [][]int{{0, 1}}, grids[0].Values())
	assert.Equal(t, [][]int{{9}, {1}}, grids[1].Values())
}

func TestOverlayGrids_Errors(t *testing.T) {
	e := newEngine(t, nil)

	_, err := e.OverlayGrids(nil, [][]int{{1}}, nil)
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)

	_, err = e.OverlayGrids([][]int{{1}}, [][]int{{1, 2}, {3}}, nil)
	assert.ErrorIs(t, err, grid.ErrInvalidDimensions)
}

func TestOverlayGrids_DoesNotMutate(t *testing.T) {
	e := newEngine(t, nil)
	a := [][]int{{1, 2}, {3, 4}}
	b := [][]int{{0, 5}, {6, 0}}

	res, err := e.OverlayGrids(a, b, overlay.NonZero)
	require.NoError(t, err)
	assert.Equal(t, []overlay.Point{{Row: 0, Col: 1}, {Row: 1, Col: 0}}, res.InteractionPoints)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, a)
	assert.Equal(t, [][]int{{0, 5}, {6, 0}}, b)
}

func TestAttributesFor(t *testing.T) {
	e := newEngine(t, func(c *config.Config) { c.Attributes.FrequencyBase = 440 })

	b := e.AttributesFor(3)
	assert.Equal(t, 1320, b.Frequency)
	assert.Equal(t, [3]int{108, 70, 50}, b.Color.Tuple())
	assert.True(t, b.IsGateway)

	assert.False(t, e.AttributesFor(1).IsGateway)
	assert.Equal(t, e.AttributesFor(3), e.AttributesFor(3))
}

func TestDigitRecord(t *testing.T) {
	e := newEngine(t, nil)
	rec := e.DigitRecord(9)

	assert.Equal(t, 9, rec.Digit)
	assert.Equal(t, 3888, rec.Frequency)
	assert.True(t, rec.IsGateway)
	assert.NotEmpty(t, rec.Consciousness)
	assert.Equal(t, rec.Color.Hex(), rec.Hex)
}
