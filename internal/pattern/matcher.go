package pattern

import (
	"slices"

	"harmonic/internal/logging"
)

// Match records every offset at which one pattern occurs.
type Match struct {
	Pattern string
	Offsets []int
}

// Matcher finds registered patterns inside digit sequences.
// It reads the registry on every call, so patterns registered later are
// picked up without rebuilding the matcher.
type Matcher struct {
	registry *Registry
}

// NewMatcher creates a matcher over the given registry.
func NewMatcher(registry *Registry) *Matcher {
	return &Matcher{registry: registry}
}

// FindMatches returns the names of all patterns that occur as a contiguous
// subsequence of digits, in registration order, each name once.
func (m *Matcher) FindMatches(digits []int) []string {
	names := FindMatchesIn(digits, m.registry.All())
	logging.Get(logging.CategoryMatcher).Debug("Matched %d pattern(s) in %d digits", len(names), len(digits))
	return names
}

// Locate is like FindMatches but also reports every offset.
func (m *Matcher) Locate(digits []int) []Match {
	return LocateIn(digits, m.registry.All())
}

// FindMatchesIn is the registry-free form of Matcher.FindMatches.
func FindMatchesIn(digits []int, patterns []Pattern) []string {
	var names []string
	for _, p := range patterns {
		if firstOffset(digits, p.Sequence) >= 0 {
			names = append(names, p.Name)
		}
	}
	return names
}

// LocateIn is the registry-free form of Matcher.Locate.
func LocateIn(digits []int, patterns []Pattern) []Match {
	var matches []Match
	for _, p := range patterns {
		if offsets := allOffsets(digits, p.Sequence); len(offsets) > 0 {
			matches = append(matches, Match{Pattern: p.Name, Offsets: offsets})
		}
	}
	return matches
}

func firstOffset(digits, seq []int) int {
	n := len(seq)
	if n == 0 {
		return -1
	}
	for i := 0; i+n <= len(digits); i++ {
		if slices.Equal(digits[i:i+n], seq) {
			return i
		}
	}
	return -1
}

func allOffsets(digits, seq []int) []int {
	n := len(seq)
	if n == 0 {
		return nil
	}
	var offsets []int
	for i := 0; i+n <= len(digits); i++ {
		if slices.Equal(digits[i:i+n], seq) {
			offsets = append(offsets, i)
		}
	}
	return offsets
}
