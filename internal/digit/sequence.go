package digit

// Digits returns the decimal digits of |n|, most significant first.
// Digits(0) is [0].
func Digits(n int) []int {
	u := magnitude(n)
	if u == 0 {
		return []int{0}
	}
	var rev []int
	for u > 0 {
		rev = append(rev, int(u%10))
		u /= 10
	}
	out := make([]int, len(rev))
	for i, d := range rev {
		out[len(rev)-1-i] = d
	}
	return out
}

// SumDigits returns the sum of the decimal digits of |n|.
func SumDigits(n int) int {
	u := magnitude(n)
	sum := 0
	for u > 0 {
		sum += int(u % 10)
		u /= 10
	}
	return sum
}

// DigitalRoot repeatedly sums decimal digits until one digit remains.
// For n != 0 it agrees with Default().Reduce(n); DigitalRoot(0) is 0.
func DigitalRoot(n int) int {
	s := SumDigits(n)
	for s >= 10 {
		s = SumDigits(s)
	}
	return s
}

// DoublingCycle walks 1, 2, 4, 8, ... reducing each step with r, and stops
// before the first repeated value. Under the default reducer this is the
// cycle 1 2 4 8 7 5.
func DoublingCycle(r Reducer) []int {
	seen := make(map[int]bool)
	var cycle []int
	for x := r.Reduce(1); !seen[x]; x = r.Reduce(x * 2) {
		seen[x] = true
		cycle = append(cycle, x)
	}
	return cycle
}

func magnitude(n int) uint64 {
	if n < 0 {
		// -(n+1) cannot overflow, even for math.MinInt.
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}
