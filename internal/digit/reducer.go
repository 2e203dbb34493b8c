// Package digit reduces integers to a single digit under a fixed modulus.
//
// The default reduction is the digital root: |n| mod 9 with a zero remainder
// mapped back to 9, so multiples of nine reduce to 9 rather than 0. Both the
// modulus and the value substituted for a zero remainder are configurable.
package digit

import "fmt"

// DefaultBase is the modulus used for digital-root reduction.
const DefaultBase = 9

// Reducer is a validated reduction rule. The zero value behaves like
// Default().
type Reducer struct {
	base int
	zero int
}

// Option customizes a Reducer at construction time.
type Option func(*Reducer)

// WithZeroReplacement sets the value returned when |n| mod base is zero.
func WithZeroReplacement(z int) Option {
	return func(r *Reducer) {
		r.zero = z
	}
}

// AllowZero lets a zero remainder pass through, giving results in [0, base-1].
func AllowZero() Option {
	return WithZeroReplacement(0)
}

// NewReducer builds a Reducer for the given modulus.
// Returns ErrInvalidArgument if base is not positive.
func NewReducer(base int, opts ...Option) (Reducer, error) {
	if base <= 0 {
		return Reducer{}, fmt.Errorf("%w: base must be positive, got %d", ErrInvalidArgument, base)
	}
	r := Reducer{base: base, zero: base}
	for _, opt := range opts {
		opt(&r)
	}
	return r, nil
}

// MustReducer is like NewReducer but panics on an invalid base.
// Use it for package-level rules whose base is a constant.
func MustReducer(base int, opts ...Option) Reducer {
	r, err := NewReducer(base, opts...)
	if err != nil {
		panic(fmt.Sprintf("digit: %v", err))
	}
	return r
}

// Default returns the digital-root reducer (base 9, zero maps to 9).
func Default() Reducer {
	return Reducer{base: DefaultBase, zero: DefaultBase}
}

// Base returns the modulus.
func (r Reducer) Base() int {
	if r.base == 0 {
		return DefaultBase
	}
	return r.base
}

// ZeroReplacement returns the value substituted for a zero remainder.
func (r Reducer) ZeroReplacement() int {
	if r.base == 0 {
		return DefaultBase
	}
	return r.zero
}

// AllowsZero reports whether the reducer can return 0.
func (r Reducer) AllowsZero() bool {
	return r.ZeroReplacement() == 0
}

// Reduce maps n to |n| mod base, substituting the zero replacement for a
// zero remainder. It is total: every int, including math.MinInt, is accepted.
func (r Reducer) Reduce(n int) int {
	base, zero := r.Base(), r.ZeroReplacement()
	// Go's remainder carries the sign of n, so |n mod b| == |n| mod b and
	// negating the remainder never overflows.
	m := n % base
	if m < 0 {
		m = -m
	}
	if m == 0 {
		return zero
	}
	return m
}

// ReduceAll reduces every element of seq into a new slice.
func (r Reducer) ReduceAll(seq []int) []int {
	out := make([]int, len(seq))
	for i, n := range seq {
		out[i] = r.Reduce(n)
	}
	return out
}

// String describes the rule, e.g. "mod 9 (0->9)".
func (r Reducer) String() string {
	return fmt.Sprintf("mod %d (0->%d)", r.Base(), r.ZeroReplacement())
}

// Reduce is the one-shot form of Reducer.Reduce.
// Returns ErrInvalidArgument if base is not positive.
func Reduce(n, base, zeroReplacement int) (int, error) {
	r, err := NewReducer(base, WithZeroReplacement(zeroReplacement))
	if err != nil {
		return 0, err
	}
	return r.Reduce(n), nil
}
