package grid

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"harmonic/internal/logging"
)

// Spec describes one grid in a batch.
type Spec struct {
	Name string
	Rows int
	Cols int
	Cell CellFunc
}

// GenerateAll builds every spec concurrently with at most workers
// goroutines (unlimited when workers <= 0). Results keep the order of specs.
// The first failure cancels the remaining work and is returned.
func (gen Generator) GenerateAll(ctx context.Context, specs []Spec, workers int) ([]Grid, error) {
	timer := logging.StartTimer(logging.CategoryGrid, "GenerateAll")
	defer timer.Stop()

	results := make([]Grid, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, s := range specs {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := gen.Generate(s.Rows, s.Cols, s.Cell)
			if err != nil {
				return fmt.Errorf("grid %q: %w", s.Name, err)
			}
			results[i] = out
			logging.GridDebug("Generated grid %q (%dx%d)", s.Name, s.Rows, s.Cols)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GenerateAll is Generator{}.GenerateAll.
func GenerateAll(ctx context.Context, specs []Spec, workers int) ([]Grid, error) {
	return Generator{}.GenerateAll(ctx, specs, workers)
}
