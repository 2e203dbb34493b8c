package grid

import (
	"fmt"
	"sort"

	"harmonic/internal/digit"
)

// Index returns the raw sum row+col.
func Index() CellFunc {
	return func(row, col int) int { return row + col }
}

// Sum returns reduce(row+col).
func Sum(r digit.Reducer) CellFunc {
	return func(row, col int) int { return r.Reduce(row + col) }
}

// Product returns reduce(row*col).
func Product(r digit.Reducer) CellFunc {
	return func(row, col int) int { return r.Reduce(row * col) }
}

// Difference returns reduce(row-col).
func Difference(r digit.Reducer) CellFunc {
	return func(row, col int) int { return r.Reduce(row - col) }
}

// Frequency returns base * reduce(row+col).
func Frequency(r digit.Reducer, base int) CellFunc {
	return func(row, col int) int { return base * r.Reduce(row+col) }
}

// Doubling walks the reduced doubling cycle along anti-diagonals:
// cell (row, col) holds the (row+col)-th element of DoublingCycle(r).
func Doubling(r digit.Reducer) CellFunc {
	cycle := digit.DoublingCycle(r)
	return func(row, col int) int {
		i := (row + col) % len(cycle)
		if i < 0 {
			i += len(cycle)
		}
		return cycle[i]
	}
}

// formulas maps config/CLI names to constructors.
var formulas = map[string]func(r digit.Reducer, frequencyBase int) CellFunc{
	"index":      func(digit.Reducer, int) CellFunc { return Index() },
	"sum":        func(r digit.Reducer, _ int) CellFunc { return Sum(r) },
	"product":    func(r digit.Reducer, _ int) CellFunc { return Product(r) },
	"difference": func(r digit.Reducer, _ int) CellFunc { return Difference(r) },
	"frequency":  Frequency,
	"doubling":   func(r digit.Reducer, _ int) CellFunc { return Doubling(r) },
}

// FormulaNames returns the names accepted by FormulaByName, sorted.
func FormulaNames() []string {
	names := make([]string, 0, len(formulas))
	for name := range formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormulaByName builds a named formula. frequencyBase is only used by
// "frequency".
func FormulaByName(name string, r digit.Reducer, frequencyBase int) (CellFunc, error) {
	build, ok := formulas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownFormula, name, FormulaNames())
	}
	return build(r, frequencyBase), nil
}
