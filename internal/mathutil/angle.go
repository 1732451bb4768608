package mathutil

import "math"

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(a float64) float64 {
	d := math.Mod(a, 360)
	if d < 0 {
		d += 360
	}
	// -1e-15 + 360 rounds to 360 in float64
	if d >= 360 {
		d = 0
	}
	if d == 0 {
		return 0 // drop negative zero
	}
	return d
}
