package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMatches(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("p", []int{1, 2, 3}))
	m := NewMatcher(reg)

	assert.Equal(t, []string{"p"}, m.FindMatches([]int{0, 1, 2, 3, 4}))
	assert.Empty(t, m.FindMatches([]int{9, 9, 9}))
}

func TestFindMatches_Trinity(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("trinity", []int{3, 3, 3}))

	got := NewMatcher(reg).FindMatches([]int{1, 3, 3, 3, 7})
	assert.Equal(t, []string{"trinity"}, got)
}

func TestFindMatches_EdgeCases(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("long", []int{1, 2, 3, 4}))
	require.NoError(t, reg.Register("one", []int{4}))
	m := NewMatcher(reg)

	tests := []struct {
		name   string
		digits []int
		want   []string
	}{
		{"empty input", nil, nil},
		{"pattern longer than input", []int{1, 2, 3}, nil},
		{"exact length", []int{1, 2, 3, 4}, []string{"long", "one"}},
		{"match at end", []int{9, 9, 4}, []string{"one"}},
		{"partial prefix only", []int{1, 2, 3, 5}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.FindMatches(tt.digits))
		})
	}
}

func TestFindMatches_RegistrationOrderAndUnique(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("b", []int{2}))
	require.NoError(t, reg.Register("a", []int{1}))
	m := NewMatcher(reg)

	assert.Equal(t, []string{"b", "a"}, m.FindMatches([]int{1, 2, 1, 2, 1}))
}

func TestMatcher_SeesLaterRegistrations(t *testing.T) {
	reg := NewRegistry()
	m := NewMatcher(reg)
	assert.Empty(t, m.FindMatches([]int{5, 5}))

	require.NoError(t, reg.Register("fives", []int{5, 5}))
	assert.Equal(t, []string{"fives"}, m.FindMatches([]int{5, 5}))

	reg.Unregister("fives")
	assert.Empty(t, m.FindMatches([]int{5, 5}))
}

func TestLocate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("pair", []int{3, 3}))
	require.NoError(t, reg.Register("none", []int{8}))

	got := NewMatcher(reg).Locate([]int{3, 3, 3, 1, 3, 3})
	assert.Equal(t, []Match{{Pattern: "pair", Offsets: []int{0, 1, 4}}}, got)
}

func TestFindMatchesIn_WithoutRegistry(t *testing.T) {
	patterns := []Pattern{
		{Name: "x", Sequence: []int{7, 7}},
		{Name: "empty"},
	}
	assert.Equal(t, []string{"x"}, FindMatchesIn([]int{1, 7, 7}, patterns))
	assert.Empty(t, LocateIn([]int{1, 2}, patterns))
}
