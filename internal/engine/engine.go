// Package engine wires the reducer, pattern registry, matcher, grid
// generator, overlay and attribute mapper into one value built from
// configuration.
package engine

import (
	"context"
	"fmt"

	"harmonic/internal/attributes"
	"harmonic/internal/config"
	"harmonic/internal/digit"
	"harmonic/internal/grid"
	"harmonic/internal/logging"
	"harmonic/internal/overlay"
	"harmonic/internal/pattern"
)

// Engine is the library surface used by the CLI and by callers that want
// a ready-made set of components sharing one reducer and one registry.
// It is safe for concurrent use; only the registry holds mutable state.
type Engine struct {
	cfg       config.Config
	reducer   digit.Reducer
	registry  *pattern.Registry
	matcher   *pattern.Matcher
	generator grid.Generator
	mapper    *attributes.Mapper
}

// New builds an engine from cfg. A nil cfg means config.DefaultConfig().
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	timer := logging.StartTimer(logging.CategoryEngine, "New")
	defer timer.Stop()

	reducer, err := ReducerFromConfig(cfg.Reducer)
	if err != nil {
		return nil, err
	}
	logging.Get(logging.CategoryReducer).Debug("Reducer: %s", reducer)

	registry := pattern.NewRegistry()
	if cfg.Patterns.LoadDefaults {
		if err := registry.Load(pattern.DefaultCatalog(), false); err != nil {
			return nil, fmt.Errorf("load default patterns: %w", err)
		}
	}
	for i, ps := range cfg.Patterns.Custom {
		opts, err := registerOptions(ps)
		if err != nil {
			return nil, fmt.Errorf("patterns.custom[%d]: %w", i, err)
		}
		if err := registry.Register(ps.Name, ps.Sequence, opts...); err != nil {
			return nil, fmt.Errorf("patterns.custom[%d]: %w", i, err)
		}
	}

	logging.Registry("Pattern catalog ready: %d patterns (%d custom)", registry.Len(), len(cfg.Patterns.Custom))

	mapper, err := attributes.NewMapper(AttributesConfig(cfg.Attributes), reducer, registry)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       *cfg,
		reducer:   reducer,
		registry:  registry,
		matcher:   pattern.NewMatcher(registry),
		generator: grid.Generator{MaxCells: cfg.Grid.MaxCells},
		mapper:    mapper,
	}
	logging.EngineDebug("Engine ready: reducer=%s patterns=%d max_cells=%d",
		reducer, registry.Len(), cfg.Grid.MaxCells)
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg *config.Config) *Engine {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// ReducerFromConfig builds the reducer described by c.
func ReducerFromConfig(c config.ReducerConfig) (digit.Reducer, error) {
	if c.AllowZero {
		return digit.NewReducer(c.Base, digit.AllowZero())
	}
	return digit.NewReducer(c.Base, digit.WithZeroReplacement(c.GetZeroReplacement()))
}

// AttributesConfig converts the config section to mapper constants.
func AttributesConfig(c config.AttributesConfig) attributes.Config {
	return attributes.Config{
		FrequencyBase: c.FrequencyBase,
		HueStep:       c.HueStep,
		Saturation:    c.Saturation,
		Lightness:     c.Lightness,
	}
}

func registerOptions(ps config.PatternSpec) ([]pattern.RegisterOption, error) {
	category, err := pattern.ParseCategory(ps.Category)
	if err != nil {
		return nil, err
	}
	opts := []pattern.RegisterOption{
		pattern.WithGateway(ps.Gateway),
		pattern.WithLabel(ps.Label),
		pattern.WithDescription(ps.Description),
		pattern.WithCategory(category),
	}
	if ps.Overwrite {
		opts = append(opts, pattern.WithOverwrite())
	}
	return opts, nil
}

// Config returns a copy of the configuration the engine was built from.
func (e *Engine) Config() config.Config { return e.cfg }

// Reducer returns the engine's reducer.
func (e *Engine) Reducer() digit.Reducer { return e.reducer }

// Registry returns the engine's pattern registry.
func (e *Engine) Registry() *pattern.Registry { return e.registry }

// Mapper returns the engine's attribute mapper.
func (e *Engine) Mapper() *attributes.Mapper { return e.mapper }

// ReduceDigit reduces n with the configured reducer.
func (e *Engine) ReduceDigit(n int) int {
	return e.reducer.Reduce(n)
}

// ReduceDigitWith reduces n with an explicit base and zero replacement.
func (e *Engine) ReduceDigitWith(n, base, zeroReplacement int) (int, error) {
	return digit.Reduce(n, base, zeroReplacement)
}

// RegisterPattern adds a pattern to the registry.
func (e *Engine) RegisterPattern(name string, sequence []int, opts ...pattern.RegisterOption) error {
	return e.registry.Register(name, sequence, opts...)
}

// UnregisterPattern removes a pattern, reporting whether it existed.
func (e *Engine) UnregisterPattern(name string) bool {
	return e.registry.Unregister(name)
}

// Pattern looks up a pattern by name.
func (e *Engine) Pattern(name string) (pattern.Pattern, bool) {
	return e.registry.Get(name)
}

// Patterns returns every registered pattern in registration order.
func (e *Engine) Patterns() []pattern.Pattern {
	return e.registry.All()
}

// FindMatchingPatterns returns the names of the patterns occurring in digits.
func (e *Engine) FindMatchingPatterns(digits []int) []string {
	return e.matcher.FindMatches(digits)
}

// LocatePatterns returns every match with its offsets.
func (e *Engine) LocatePatterns(digits []int) []pattern.Match {
	return e.matcher.Locate(digits)
}

// MatchNumber reduces each decimal digit of n and matches the result.
func (e *Engine) MatchNumber(n int) []string {
	return e.matcher.FindMatches(e.reducer.ReduceAll(digit.Digits(n)))
}

// GenerateGrid builds a rows x cols grid from fn, subject to grid.max_cells.
func (e *Engine) GenerateGrid(rows, cols int, fn grid.CellFunc) (grid.Grid, error) {
	return e.generator.Generate(rows, cols, fn)
}

// GenerateFormulaGrid builds a grid from a named formula using the
// engine's reducer and frequency base.
func (e *Engine) GenerateFormulaGrid(rows, cols int, formula string) (grid.Grid, error) {
	fn, err := e.Formula(formula)
	if err != nil {
		return grid.Grid{}, err
	}
	return e.generator.Generate(rows, cols, fn)
}

// Formula resolves a named formula bound to the engine's reducer.
func (e *Engine) Formula(name string) (grid.CellFunc, error) {
	return grid.FormulaByName(name, e.reducer, e.cfg.Attributes.FrequencyBase)
}

// GenerateGrids builds a batch of grids with grid.workers concurrency.
func (e *Engine) GenerateGrids(ctx context.Context, specs []grid.Spec) ([]grid.Grid, error) {
	return e.generator.GenerateAll(ctx, specs, e.cfg.Grid.Workers)
}

// OverlayGrids validates two caller-supplied matrices and overlays them.
// A nil isActive means overlay.Positive.
func (e *Engine) OverlayGrids(a, b [][]int, isActive overlay.Predicate) (overlay.Result, error) {
	left, err := grid.FromRows(a)
	if err != nil {
		return overlay.Result{}, fmt.Errorf("left grid: %w", err)
	}
	right, err := grid.FromRows(b)
	if err != nil {
		return overlay.Result{}, fmt.Errorf("right grid: %w", err)
	}
	return overlay.Overlay(left, right, isActive), nil
}

// AttributesFor returns the attribute bundle for a digit.
func (e *Engine) AttributesFor(d int) attributes.Bundle {
	return e.mapper.AttributesFor(d)
}

// DigitRecord returns the display record for a digit.
func (e *Engine) DigitRecord(d int) attributes.Record {
	return e.mapper.Record(d)
}
