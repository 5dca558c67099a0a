package forecast

import "math"

// RoundHalfUp rounds x to the nearest integer, with halves going towards
// positive infinity (2.5 -> 3, -2.5 -> -2).
func RoundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return f + 1
	}
	return f
}

// project rounds v half-up and floors it at zero.
func project(v float64) float64 {
	return math.Max(0, RoundHalfUp(v))
}
