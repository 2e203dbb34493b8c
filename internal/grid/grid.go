// Package grid builds fixed-size integer matrices from per-cell formulas.
//
// A Grid is a value: it is fully populated at construction and no method
// mutates it. Accessors that expose cells return copies.
package grid

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"harmonic/internal/digit"
)

// Grid errors. All of them wrap digit.ErrInvalidArgument.
var (
	ErrInvalidDimensions = fmt.Errorf("invalid grid dimensions: %w", digit.ErrInvalidArgument)
	ErrNilCellFunc       = fmt.Errorf("nil cell function: %w", digit.ErrInvalidArgument)
	ErrTooLarge          = fmt.Errorf("grid exceeds cell limit: %w", digit.ErrInvalidArgument)
)

// ErrUnknownFormula is returned by FormulaByName.
var ErrUnknownFormula = errors.New("unknown formula")

// CellFunc computes the value of cell (row, col).
type CellFunc func(row, col int) int

// Grid is an immutable rows x cols integer matrix stored row-major.
type Grid struct {
	rows  int
	cols  int
	cells []int
}

// Generate evaluates fn for every cell, row by row.
// Returns ErrInvalidDimensions if rows or cols is not positive, and
// ErrTooLarge if rows*cols does not fit in an int.
func Generate(rows, cols int, fn CellFunc) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if rows > math.MaxInt/cols {
		return Grid{}, fmt.Errorf("%w: %dx%d overflows int", ErrTooLarge, rows, cols)
	}
	if fn == nil {
		return Grid{}, ErrNilCellFunc
	}

	cells := make([]int, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells[r*cols+c] = fn(r, c)
		}
	}
	return Grid{rows: rows, cols: cols, cells: cells}, nil
}

// MustGenerate is like Generate but panics on error.
func MustGenerate(rows, cols int, fn CellFunc) Grid {
	g, err := Generate(rows, cols, fn)
	if err != nil {
		panic(fmt.Sprintf("grid: %v", err))
	}
	return g
}

// FromRows copies a caller-supplied matrix into a Grid.
// Returns ErrInvalidDimensions if it is empty or ragged.
func FromRows(values [][]int) (Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return Grid{}, fmt.Errorf("%w: empty matrix", ErrInvalidDimensions)
	}
	cols := len(values[0])
	for i, row := range values {
		if len(row) != cols {
			return Grid{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDimensions, i, len(row), cols)
		}
	}
	return Generate(len(values), cols, func(r, c int) int { return values[r][c] })
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g Grid) Cols() int { return g.cols }

// Size returns rows * cols.
func (g Grid) Size() int { return len(g.cells) }

// IsZero reports whether g is the zero Grid (never produced by Generate).
func (g Grid) IsZero() bool { return g.rows == 0 }

// At returns the value of cell (r, c). It panics if the cell is out of range.
func (g Grid) At(r, c int) int {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		panic(fmt.Sprintf("grid: cell (%d,%d) out of range %dx%d", r, c, g.rows, g.cols))
	}
	return g.cells[r*g.cols+c]
}

// Row returns a copy of row r.
func (g Grid) Row(r int) []int {
	if r < 0 || r >= g.rows {
		panic(fmt.Sprintf("grid: row %d out of range %d", r, g.rows))
	}
	return slices.Clone(g.cells[r*g.cols : (r+1)*g.cols])
}

// Values returns a deep copy as a slice of rows.
func (g Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = g.Row(r)
	}
	return out
}

// Sum returns the sum of all cells.
func (g Grid) Sum() int {
	sum := 0
	for _, v := range g.cells {
		sum += v
	}
	return sum
}

// Count returns the number of cells for which keep returns true.
func (g Grid) Count(keep func(int) bool) int {
	n := 0
	for _, v := range g.cells {
		if keep(v) {
			n++
		}
	}
	return n
}

// Map returns a new grid with fn applied to every cell.
func (g Grid) Map(fn func(int) int) Grid {
	cells := make([]int, len(g.cells))
	for i, v := range g.cells {
		cells[i] = fn(v)
	}
	return Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal reports whether both grids have the same shape and cells.
func (g Grid) Equal(o Grid) bool {
	return g.rows == o.rows && g.cols == o.cols && slices.Equal(g.cells, o.cells)
}

// String renders rows separated by newlines and cells by spaces.
func (g Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(g.cells[r*g.cols+c]))
		}
	}
	return b.String()
}

// Generator applies a cell limit before generating.
// The zero value has no limit.
type Generator struct {
	// MaxCells caps rows*cols. Zero or negative means unlimited.
	MaxCells int
}

// Generate is Generate with the cell limit enforced.
func (gen Generator) Generate(rows, cols int, fn CellFunc) (Grid, error) {
	if err := gen.check(rows, cols); err != nil {
		return Grid{}, err
	}
	return Generate(rows, cols, fn)
}

func (gen Generator) check(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if gen.MaxCells > 0 && rows > gen.MaxCells/cols {
		return fmt.Errorf("%w: %dx%d > %d cells", ErrTooLarge, rows, cols, gen.MaxCells)
	}
	return nil
}
