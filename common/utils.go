package common

import "math"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Wrap maps v into the half-open range [0, m) for any sign of v.
// A non-positive modulus returns 0.
//
// Parameters:
//   - v: the value to wrap
//   - m: the modulus
//
// Returns:
//   - float64: the wrapped value
func Wrap(v, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := math.Mod(math.Mod(v, m)+m, m)
	// math.Mod can return m itself for tiny negative inputs after the shift.
	if r >= m {
		r = 0
	}
	return r
}

// Clamp restricts v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: the clamped value
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
