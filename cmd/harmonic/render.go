package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"harmonic/internal/grid"
	"harmonic/internal/overlay"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = cellStyle.Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// newTable returns a bordered table with bold headers.
func newTable(headers ...string) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if len(headers) > 0 {
		t.Headers(headers...)
	}
	return t
}

// renderGrid draws g as a borderless-header table.
func renderGrid(g grid.Grid) string {
	t := newTable()
	for _, row := range g.Values() {
		t.Row(itoaAll(row)...)
	}
	return t.String()
}

// renderOverlay draws the overlay region, highlighting interaction points
// as "left/right" and dimming the rest.
func renderOverlay(res overlay.Result) string {
	t := newTable()
	for r := 0; r < res.Rows; r++ {
		cells := make([]string, res.Cols)
		for c := 0; c < res.Cols; c++ {
			pair := strconv.Itoa(res.Left.At(r, c)) + "/" + strconv.Itoa(res.Right.At(r, c))
			if res.IsInteraction(r, c) {
				cells[c] = activeStyle.Render(pair)
			} else {
				cells[c] = mutedStyle.Render(pair)
			}
		}
		t.Row(cells...)
	}
	return t.String()
}

// swatch renders a small block filled with hex.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
}

func itoaAll(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}

func joinInts(values []int, sep string) string {
	return strings.Join(itoaAll(values), sep)
}
