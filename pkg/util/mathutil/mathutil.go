package mathutil

import "math"

// Round rounds x to precision fractional digits, half away from zero. A precision of zero
// rounds to the nearest integer and a negative precision rounds to tens, hundreds, etc.
// NaN and infinities are returned unchanged.
func Round(x float64, precision int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	if precision == 0 {
		return math.Round(x)
	}

	scale := math.Pow(10, float64(precision))

	// more fractional digits than a float64 holds leaves nothing to round
	if math.IsInf(scale, 0) {
		return x
	}

	// every finite value is below half of a power of ten this large
	if scale == 0 {
		return math.Copysign(0, x)
	}

	// scaling very large values overflows, in which case x has no fractional digits to round
	scaled := x * scale
	if math.IsInf(scaled, 0) {
		return x
	}

	return math.Round(scaled) / scale
}
