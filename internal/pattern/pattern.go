// Package pattern keeps a catalog of named digit sequences and finds them
// inside arbitrary digit sequences.
//
// Architecture:
//
//	Catalog/config → Registry.Register() → Matcher.FindMatches(digits) → names
package pattern

import (
	"fmt"
	"slices"
)

// Category classifies a pattern. It is resolved once when the pattern is
// registered and never re-derived from the name or label afterwards.
type Category string

const (
	// CategoryVortex covers reduced doubling/halving cycles (1 2 4 8 7 5).
	CategoryVortex Category = "vortex"

	// CategoryGateway covers sequences tagged as gateways (3 6 9).
	CategoryGateway Category = "gateway"

	// CategoryRepeat covers one digit repeated (3 3 3).
	CategoryRepeat Category = "repeat"

	// CategoryPair covers two-digit complements that sum to nine.
	CategoryPair Category = "pair"

	// CategoryCustom is anything else.
	CategoryCustom Category = "custom"
)

// AllCategories returns every defined category.
func AllCategories() []Category {
	return []Category{
		CategoryVortex,
		CategoryGateway,
		CategoryRepeat,
		CategoryPair,
		CategoryCustom,
	}
}

// ParseCategory converts a config or CLI string to a Category.
// The empty string is accepted and means "infer at registration".
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return "", nil
	}
	c := Category(s)
	if !slices.Contains(AllCategories(), c) {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidPattern, s)
	}
	return c, nil
}

// Pattern is a named digit sequence.
type Pattern struct {
	// Name is the unique registry key.
	Name string

	// Sequence holds the digits to match, each in [0,9]. Never empty.
	Sequence []int

	// IsGateway is a display tag; it does not change matching.
	IsGateway bool

	// Label is a human-readable title. Defaults to Name.
	Label string

	// Description is free text for listings.
	Description string

	// Category is fixed at registration.
	Category Category
}

// Len returns the sequence length.
func (p Pattern) Len() int {
	return len(p.Sequence)
}

// Contains reports whether digit d appears anywhere in the sequence.
func (p Pattern) Contains(d int) bool {
	return slices.Contains(p.Sequence, d)
}

// clone returns a copy that shares no memory with p.
func (p Pattern) clone() Pattern {
	p.Sequence = slices.Clone(p.Sequence)
	return p
}

// validate checks the invariants every registered pattern must hold.
func validate(name string, sequence []int) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidPattern)
	}
	if len(sequence) == 0 {
		return fmt.Errorf("%w: %s has an empty sequence", ErrInvalidPattern, name)
	}
	for i, d := range sequence {
		if d < 0 || d > 9 {
			return fmt.Errorf("%w: %s[%d] = %d is not a digit", ErrInvalidPattern, name, i, d)
		}
	}
	return nil
}

// inferCategory picks a category when the caller did not give one.
func inferCategory(sequence []int, gateway bool) Category {
	if gateway {
		return CategoryGateway
	}
	if len(sequence) > 1 {
		repeat := true
		for _, d := range sequence[1:] {
			if d != sequence[0] {
				repeat = false
				break
			}
		}
		if repeat {
			return CategoryRepeat
		}
	}
	if len(sequence) == 2 && sequence[0]+sequence[1] == 9 {
		return CategoryPair
	}
	return CategoryCustom
}
