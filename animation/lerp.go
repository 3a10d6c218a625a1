package animation

import "math"

// Lerp interpolates between two values at progress t, where t = 0 yields
// from and t = 1 yields to. Timing functions may overshoot, therefore
// implementations must accept t outside of [0…1].
type Lerp[T any] func(from, to T, t float32) T

// LerpFloat32 interpolates linearly between two floats.
func LerpFloat32(from, to float32, t float32) float32 {
	return from + (to-from)*t
}

// LerpInt32 interpolates linearly between two integers, rounding to the
// nearest integer.
func LerpInt32(from, to int32, t float32) int32 {
	return from + int32(math.Round(float64(to-from)*float64(t)))
}

// Discrete is the interpolation for values without intermediate states.
// It flips from the start value to the end value at half time.
func Discrete[T any](from, to T, t float32) T {
	if t < 0.5 {
		return from
	}
	return to
}
