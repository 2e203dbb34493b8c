package pattern

import (
	"fmt"

	"harmonic/internal/digit"
)

// Spec is a declarative pattern definition, used for the built-in catalog
// and for patterns read from configuration.
type Spec struct {
	Name        string
	Sequence    []int
	Gateway     bool
	Label       string
	Description string
	Category    Category
}

// options converts the spec to Register options.
func (s Spec) options(overwrite bool) []RegisterOption {
	opts := []RegisterOption{
		WithGateway(s.Gateway),
		WithLabel(s.Label),
		WithDescription(s.Description),
		WithCategory(s.Category),
	}
	if overwrite {
		opts = append(opts, WithOverwrite())
	}
	return opts
}

// DefaultCatalog returns the built-in patterns. The vortex entries are
// derived from the base-9 doubling cycle rather than spelled out.
func DefaultCatalog() []Spec {
	vortex := digit.DoublingCycle(digit.Default())
	reverse := make([]int, len(vortex))
	for i, d := range vortex {
		reverse[len(vortex)-1-i] = d
	}

	return []Spec{
		{Name: "vortex", Sequence: vortex, Category: CategoryVortex,
			Label: "Vortex", Description: "doubling cycle under digital-root reduction"},
		{Name: "vortex_reverse", Sequence: reverse, Category: CategoryVortex,
			Label: "Vortex (reverse)", Description: "halving cycle, the doubling cycle read backwards"},
		{Name: "gateway", Sequence: []int{3, 6, 9}, Gateway: true,
			Label: "Gateway", Description: "the digits left out of the doubling cycle"},
		{Name: "gateway_reverse", Sequence: []int{9, 6, 3}, Gateway: true,
			Label: "Gateway (reverse)", Description: "gateway read backwards"},
		{Name: "trinity", Sequence: []int{3, 3, 3},
			Label: "Trinity", Description: "three threes"},
		{Name: "completion", Sequence: []int{9, 9, 9}, Gateway: true,
			Label: "Completion", Description: "three nines"},
		{Name: "polarity", Sequence: []int{1, 8},
			Label: "Polarity", Description: "complement pair 1/8"},
		{Name: "mirror", Sequence: []int{2, 7},
			Label: "Mirror", Description: "complement pair 2/7"},
		{Name: "balance", Sequence: []int{4, 5},
			Label: "Balance", Description: "complement pair 4/5"},
	}
}

// Load registers every spec in order. It stops at the first failure and
// reports which spec caused it.
func (r *Registry) Load(specs []Spec, overwrite bool) error {
	for i, s := range specs {
		if err := r.Register(s.Name, s.Sequence, s.options(overwrite)...); err != nil {
			return fmt.Errorf("pattern spec %d (%s): %w", i, s.Name, err)
		}
	}
	return nil
}

// NewDefaultRegistry returns a registry preloaded with DefaultCatalog.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range DefaultCatalog() {
		r.MustRegister(s.Name, s.Sequence, s.options(false)...)
	}
	return r
}
