package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"harmonic/internal/grid"
	"harmonic/internal/overlay"
)

// gridCmd generates a grid from a named formula
func (a *app) gridCmd() *cobra.Command {
	var rows, cols int
	var formula string

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Generate a grid from a cell formula",
		Long: fmt.Sprintf(`Generates a rows x cols grid where each cell is computed from its row and
column index by a named formula.

Formulas: %s

Examples:
  harmonic grid --rows 3 --cols 3
  harmonic grid --rows 9 --cols 9 --formula product`, strings.Join(grid.FormulaNames(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if formula == "" {
				formula = a.cfg.Grid.DefaultFormula
			}
			g, err := a.engine.GenerateFormulaGrid(rows, cols, formula)
			if err != nil {
				return err
			}
			a.logger.Debug("Generated grid", zap.String("formula", formula), zap.Int("rows", rows), zap.Int("cols", cols))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderGrid(g))
			fmt.Fprintf(out, "formula: %s\n", formula)
			fmt.Fprintf(out, "cells: %d\n", g.Size())
			fmt.Fprintf(out, "sum: %d\n", g.Sum())
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 3, "Number of rows")
	cmd.Flags().IntVar(&cols, "cols", 3, "Number of columns")
	cmd.Flags().StringVarP(&formula, "formula", "f", "", "Cell formula (default: grid.default_formula)")
	return cmd
}

// overlayCmd overlays two formula grids and reports their interaction
func (a *app) overlayCmd() *cobra.Command {
	var rows, cols, rightRows, rightCols int
	var left, right, active string

	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Overlay two formula grids and report interaction points",
		Long: `Builds a left and a right grid from named formulas, overlays them over
their shared region and reports the cells active in both.

Activity predicates: positive (default), nonzero, atleast:N, in:A,B,...

Examples:
  harmonic overlay --left sum --right product
  harmonic overlay --left index --right doubling --active atleast:5
  harmonic overlay --rows 3 --cols 4 --right-rows 2 --right-cols 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			isActive, err := parsePredicate(active)
			if err != nil {
				return err
			}
			leftFn, err := a.engine.Formula(left)
			if err != nil {
				return fmt.Errorf("left: %w", err)
			}
			rightFn, err := a.engine.Formula(right)
			if err != nil {
				return fmt.Errorf("right: %w", err)
			}
			if rightRows <= 0 {
				rightRows = rows
			}
			if rightCols <= 0 {
				rightCols = cols
			}

			grids, err := a.engine.GenerateGrids(cmd.Context(), []grid.Spec{
				{Name: left, Rows: rows, Cols: cols, Cell: leftFn},
				{Name: right, Rows: rightRows, Cols: rightCols, Cell: rightFn},
			})
			if err != nil {
				return err
			}

			res := overlay.Overlay(grids[0], grids[1], isActive)
			a.logger.Debug("Overlay complete",
				zap.Int("active", res.Aggregate.ActiveCells),
				zap.Int("total", res.Aggregate.TotalCells))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderOverlay(res))
			fmt.Fprintf(out, "region: %dx%d\n", res.Rows, res.Cols)
			fmt.Fprintf(out, "total cells: %d\n", res.Aggregate.TotalCells)
			fmt.Fprintf(out, "active cells: %d\n", res.Aggregate.ActiveCells)
			fmt.Fprintf(out, "density: %.3f\n", res.Density())
			fmt.Fprintf(out, "sum left: %d\n", res.Aggregate.SumLeft)
			fmt.Fprintf(out, "sum right: %d\n", res.Aggregate.SumRight)
			fmt.Fprintf(out, "interaction points: %s\n", formatPoints(res.InteractionPoints))
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 3, "Rows of the left grid")
	cmd.Flags().IntVar(&cols, "cols", 3, "Columns of the left grid")
	cmd.Flags().IntVar(&rightRows, "right-rows", 0, "Rows of the right grid (default: --rows)")
	cmd.Flags().IntVar(&rightCols, "right-cols", 0, "Columns of the right grid (default: --cols)")
	cmd.Flags().StringVar(&left, "left", "sum", "Formula of the left grid")
	cmd.Flags().StringVar(&right, "right", "product", "Formula of the right grid")
	cmd.Flags().StringVar(&active, "active", "positive", "Activity predicate")
	return cmd
}

// parsePredicate maps the --active flag to an overlay predicate.
func parsePredicate(s string) (overlay.Predicate, error) {
	name, arg, hasArg := strings.Cut(s, ":")
	switch name {
	case "", "positive":
		return overlay.Positive, nil
	case "nonzero":
		return overlay.NonZero, nil
	case "atleast":
		n, err := strconv.Atoi(arg)
		if !hasArg || err != nil {
			return nil, fmt.Errorf("invalid predicate %q: want atleast:N", s)
		}
		return overlay.AtLeast(n), nil
	case "in":
		if !hasArg || arg == "" {
			return nil, fmt.Errorf("invalid predicate %q: want in:A,B,...", s)
		}
		values, err := parseInts(strings.Split(arg, ","))
		if err != nil {
			return nil, fmt.Errorf("invalid predicate %q: %w", s, err)
		}
		return overlay.InSet(values...), nil
	default:
		return nil, fmt.Errorf("unknown predicate %q", s)
	}
}

func formatPoints(points []overlay.Point) string {
	if len(points) == 0 {
		return "(none)"
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return strings.Join(parts, " ")
}
