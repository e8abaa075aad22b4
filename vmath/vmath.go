package vmath

import "math"

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates, t=0 returns a, t=1 returns b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp returns the position of v between a and b, unclamped
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// EaseCubicInOut is the symmetric cubic ease, monotonic on [0, 1]
func EaseCubicInOut(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseLinear is the identity ease
func EaseLinear(t float64) float64 {
	return Clamp01(t)
}

// Approach moves value toward target by rate*delta of the remaining gap
// The step fraction saturates at 1 so long frames land on target instead of overshooting
func Approach(value, target, rate, delta float64) float64 {
	k := rate * delta
	if k <= 0 {
		return value
	}
	if k >= 1 {
		return target
	}
	return value + (target-value)*k
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// WrapDegrees maps an angle to [-180, 180)
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}

// Quantile returns the p-quantile of an ascending slice using linear interpolation between ranks
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}
