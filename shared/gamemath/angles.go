package gamemath

import "math"

// WrapAngle maps a to (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// LerpAngle interpolates from a to b along the shorter arc.
func LerpAngle(a, b, t float64) float64 {
	return WrapAngle(a + WrapAngle(b-a)*t)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
