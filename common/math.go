package common

import "math"

// Epsilon is the tolerance used for "effectively zero" comparisons on
// velocities, timers and axis input.
const Epsilon = 1e-6

// Sign returns -1, 0 or +1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Approach moves current toward target by at most delta without overshooting.
func Approach(current, target, delta float64) float64 {
	if current < target {
		return math.Min(current+delta, target)
	}
	return math.Max(current-delta, target)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
