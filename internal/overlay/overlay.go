// Package overlay aligns two grids at the origin and reports the cells that
// are active in both.
//
// When the grids differ in size only the shared region
// min(rows) x min(cols) is examined, and the aggregate sums cover that
// region only, never the parts of the larger grid that hang over.
package overlay

import (
	"harmonic/internal/grid"
	"harmonic/internal/logging"
)

// Point is a cell coordinate.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Predicate decides whether a cell value is active.
type Predicate func(v int) bool

// Positive is the default predicate: v > 0.
func Positive(v int) bool { return v > 0 }

// NonZero treats any non-zero value as active.
func NonZero(v int) bool { return v != 0 }

// AtLeast returns a predicate for v >= n.
func AtLeast(n int) Predicate {
	return func(v int) bool { return v >= n }
}

// InSet returns a predicate that is true for the listed values only.
func InSet(values ...int) Predicate {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(v int) bool {
		_, ok := set[v]
		return ok
	}
}

// Aggregate summarizes the overlay region.
type Aggregate struct {
	TotalCells  int `json:"total_cells"`
	ActiveCells int `json:"active_cells"`
	SumLeft     int `json:"sum_left"`
	SumRight    int `json:"sum_right"`
}

// Result is the outcome of one Overlay call.
type Result struct {
	// InteractionPoints are the cells active in both grids, row-major.
	InteractionPoints []Point

	// Left and Right are the inputs, held by value.
	Left  grid.Grid
	Right grid.Grid

	// Rows and Cols are the dimensions of the overlay region.
	Rows int
	Cols int

	Aggregate Aggregate
}

// Overlay compares a and b cell by cell over their shared region.
// A nil isActive means Positive. Neither input is modified.
func Overlay(a, b grid.Grid, isActive Predicate) Result {
	if isActive == nil {
		isActive = Positive
	}

	rows := min(a.Rows(), b.Rows())
	cols := min(a.Cols(), b.Cols())

	res := Result{
		Left:  a,
		Right: b,
		Rows:  rows,
		Cols:  cols,
	}
	res.Aggregate.TotalCells = rows * cols

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			left, right := a.At(r, c), b.At(r, c)
			res.Aggregate.SumLeft += left
			res.Aggregate.SumRight += right
			if isActive(left) && isActive(right) {
				res.InteractionPoints = append(res.InteractionPoints, Point{Row: r, Col: c})
			}
		}
	}
	res.Aggregate.ActiveCells = len(res.InteractionPoints)

	logging.OverlayDebug("Overlay %dx%d on %dx%d: region %dx%d, %d/%d active",
		a.Rows(), a.Cols(), b.Rows(), b.Cols(), rows, cols, res.Aggregate.ActiveCells, res.Aggregate.TotalCells)
	return res
}

// Density returns ActiveCells / TotalCells, or 0 for an empty region.
func (r Result) Density() float64 {
	if r.Aggregate.TotalCells == 0 {
		return 0
	}
	return float64(r.Aggregate.ActiveCells) / float64(r.Aggregate.TotalCells)
}

// IsInteraction reports whether (row, col) is an interaction point.
func (r Result) IsInteraction(row, col int) bool {
	for _, p := range r.InteractionPoints {
		if p.Row == row && p.Col == col {
			return true
		}
	}
	return false
}

// Mask returns a region-sized grid holding 1 at interaction points and 0
// elsewhere. It returns the zero Grid when the region is empty.
func (r Result) Mask() grid.Grid {
	if r.Rows == 0 || r.Cols == 0 {
		return grid.Grid{}
	}
	active := make(map[Point]bool, len(r.InteractionPoints))
	for _, p := range r.InteractionPoints {
		active[p] = true
	}
	return grid.MustGenerate(r.Rows, r.Cols, func(row, col int) int {
		if active[Point{Row: row, Col: col}] {
			return 1
		}
		return 0
	})
}

// Pairs returns the interaction points as [row, col] pairs.
func (r Result) Pairs() [][2]int {
	out := make([][2]int, len(r.InteractionPoints))
	for i, p := range r.InteractionPoints {
		out[i] = [2]int{p.Row, p.Col}
	}
	return out
}
