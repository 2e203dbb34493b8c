package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"harmonic/internal/attributes"
	"harmonic/internal/digit"
)

// reduceCmd reduces integers to single digits
func (a *app) reduceCmd() *cobra.Command {
	var base, zero int
	var showRoot bool

	cmd := &cobra.Command{
		Use:   "reduce <n>...",
		Short: "Reduce integers to a single digit",
		Long: `Reduces each integer with the configured modulus. A zero remainder is
replaced by the zero replacement (the base itself unless configured).

Examples:
  harmonic reduce 27 10 124875
  harmonic reduce --base 7 15
  harmonic reduce -- -18`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseInts(args)
			if err != nil {
				return err
			}

			explicit := cmd.Flags().Changed("base") || cmd.Flags().Changed("zero")
			if !cmd.Flags().Changed("base") {
				base = a.engine.Reducer().Base()
			}
			if !cmd.Flags().Changed("zero") {
				zero = base
				if !cmd.Flags().Changed("base") {
					zero = a.engine.Reducer().ZeroReplacement()
				}
			}

			out := cmd.OutOrStdout()
			for _, n := range nums {
				d := a.engine.ReduceDigit(n)
				if explicit {
					if d, err = a.engine.ReduceDigitWith(n, base, zero); err != nil {
						return err
					}
				}
				if showRoot {
					fmt.Fprintf(out, "%d -> %d (digits %s, root %d)\n", n, d, joinInts(digit.Digits(n), " "), digit.DigitalRoot(n))
				} else {
					fmt.Fprintf(out, "%d -> %d\n", n, d)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&base, "base", 0, "Modulus (default: configured base)")
	cmd.Flags().IntVar(&zero, "zero", 0, "Zero replacement (default: base)")
	cmd.Flags().BoolVar(&showRoot, "root", false, "Also show decimal digits and digital root")
	return cmd
}

// attrsCmd prints attribute bundles
func (a *app) attrsCmd() *cobra.Command {
	var asJSON bool
	var pair bool

	cmd := &cobra.Command{
		Use:   "attrs <digit>...",
		Short: "Show frequency, colour and gateway flag for digits",
		Long: `Derives the attribute bundle for each digit. Values outside 0-9 are
reduced first.

Examples:
  harmonic attrs 1 3 9
  harmonic attrs --json 6
  harmonic attrs --pair 4 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseInts(args)
			if err != nil {
				return err
			}

			var bundles []attributes.Bundle
			if pair {
				if len(nums) != 2 {
					return fmt.Errorf("--pair needs exactly two digits, got %d", len(nums))
				}
				bundles = append(bundles, a.engine.Mapper().AttributesForPair(nums[0], nums[1]))
			} else {
				for _, n := range nums {
					bundles = append(bundles, a.engine.AttributesFor(n))
				}
			}
			a.logger.Debug("Mapped attributes", zap.Int("count", len(bundles)))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(bundles)
			}

			t := newTable("Digit", "Frequency", "HSL", "Hex", "", "Gateway")
			for _, b := range bundles {
				hex := b.Color.Hex()
				t.Row(
					strconv.Itoa(b.Digit),
					fmt.Sprintf("%d Hz", b.Frequency),
					b.Color.String(),
					hex,
					swatch(hex),
					strconv.FormatBool(b.IsGateway),
				)
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print bundles as JSON")
	cmd.Flags().BoolVar(&pair, "pair", false, "Map the reduced sum of two digits")
	return cmd
}

// profileCmd renders the display record of a digit as markdown
func (a *app) profileCmd() *cobra.Command {
	var raw bool
	var width int

	cmd := &cobra.Command{
		Use:   "profile <digit>",
		Short: "Render the profile of a digit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid digit %q: %w", args[0], err)
			}

			rec := a.engine.DigitRecord(n)
			var containing []string
			for _, p := range a.engine.Patterns() {
				if p.Contains(rec.Digit) {
					containing = append(containing, p.Name)
				}
			}
			md := profileMarkdown(rec, containing)
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithStylePath("notty"),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			rendered, err := renderer.Render(md)
			if err != nil {
				return fmt.Errorf("failed to render profile: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source")
	cmd.Flags().IntVar(&width, "width", 80, "Word wrap width")
	return cmd
}

func profileMarkdown(rec attributes.Record, patterns []string) string {
	var b strings.Builder
	name := rec.Name
	if name == "" {
		name = "unnamed"
	}
	fmt.Fprintf(&b, "# Digit %d: %s\n\n", rec.Digit, name)
	b.WriteString("| Field | Value |\n|---|---|\n")
	if rec.Consciousness != "" {
		fmt.Fprintf(&b, "| Consciousness | %s |\n", rec.Consciousness)
	}
	if rec.Role != "" {
		fmt.Fprintf(&b, "| Role | %s |\n", rec.Role)
	}
	fmt.Fprintf(&b, "| Frequency | %d Hz |\n", rec.Frequency)
	fmt.Fprintf(&b, "| Colour | %s (%s) |\n", rec.Color, rec.Hex)
	fmt.Fprintf(&b, "| Gateway | %t |\n", rec.IsGateway)
	if len(patterns) > 0 {
		fmt.Fprintf(&b, "\nPatterns containing this digit: %s\n", strings.Join(patterns, ", "))
	}
	return b.String()
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", arg, err)
		}
		out = append(out, n)
	}
	return out, nil
}
