package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"harmonic/internal/pattern"
)

// patternsCmd lists the registered patterns
func (a *app) patternsCmd() *cobra.Command {
	var category string
	var gatewaysOnly bool

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List registered patterns",
		Long: `Lists the patterns in registration order: the built-in catalog (unless
patterns.load_defaults is false) followed by patterns.custom from config.

Examples:
  harmonic patterns
  harmonic patterns --category pair
  harmonic patterns --gateways`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := a.engine.Patterns()
			switch {
			case gatewaysOnly:
				patterns = a.engine.Registry().Gateways()
			case category != "":
				c, err := pattern.ParseCategory(category)
				if err != nil {
					return err
				}
				patterns = a.engine.Registry().ByCategory(c)
			}

			out := cmd.OutOrStdout()
			if len(patterns) == 0 {
				fmt.Fprintln(out, "No patterns registered.")
				return nil
			}

			t := newTable("Name", "Sequence", "Category", "Gateway", "Label")
			for _, p := range patterns {
				t.Row(p.Name, joinInts(p.Sequence, " "), string(p.Category), strconv.FormatBool(p.IsGateway), p.Label)
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list one category (vortex, gateway, repeat, pair, custom)")
	cmd.Flags().BoolVar(&gatewaysOnly, "gateways", false, "Only list gateway patterns")
	return cmd
}

// matchCmd finds registered patterns inside a digit sequence
func (a *app) matchCmd() *cobra.Command {
	var locate bool
	var number bool

	cmd := &cobra.Command{
		Use:   "match <digits>...",
		Short: "Find registered patterns in a digit sequence",
		Long: `Finds every registered pattern occurring as a contiguous run in the
digit sequence. Digits may be given separately or run together.

With --number each argument is an integer: its decimal digits are reduced
with the configured reducer before matching.

Examples:
  harmonic match 1 3 3 3 7
  harmonic match 13337 --locate
  harmonic match --number 124875`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if number {
				nums, err := parseInts(args)
				if err != nil {
					return err
				}
				for _, n := range nums {
					fmt.Fprintf(out, "%d: %s\n", n, namesOrNone(a.engine.MatchNumber(n)))
				}
				return nil
			}

			digits, err := parseDigits(args)
			if err != nil {
				return err
			}
			a.logger.Debug("Matching patterns", zap.Ints("digits", digits))

			if !locate {
				names := a.engine.FindMatchingPatterns(digits)
				if len(names) == 0 {
					fmt.Fprintln(out, "No patterns matched.")
					return nil
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			matches := a.engine.LocatePatterns(digits)
			if len(matches) == 0 {
				fmt.Fprintln(out, "No patterns matched.")
				return nil
			}
			t := newTable("Pattern", "Sequence", "Offsets")
			for _, m := range matches {
				p, _ := a.engine.Pattern(m.Pattern)
				t.Row(m.Pattern, joinInts(p.Sequence, " "), joinInts(m.Offsets, ", "))
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&locate, "locate", false, "Show every offset of each match")
	cmd.Flags().BoolVar(&number, "number", false, "Treat arguments as integers and reduce their digits")
	return cmd
}

// parseDigits accepts "1 3 3" and "133" alike.
func parseDigits(args []string) ([]int, error) {
	var digits []int
	for _, arg := range args {
		for _, r := range arg {
			if r < '0' || r > '9' {
				return nil, fmt.Errorf("invalid digit %q in %q", r, arg)
			}
			digits = append(digits, int(r-'0'))
		}
	}
	return digits, nil
}

func namesOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
