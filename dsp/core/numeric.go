package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Filter integrators and feedback paths decay towards zero forever; flushing
// keeps them out of the subnormal range.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// MapRange linearly maps value from [srcLo, srcHi] onto [dstLo, dstHi].
// Values outside the source range extrapolate. A degenerate source range
// returns dstLo.
func MapRange(value, srcLo, srcHi, dstLo, dstHi float64) float64 {
	if srcHi == srcLo {
		return dstLo
	}

	return dstLo + (dstHi-dstLo)*(value-srcLo)/(srcHi-srcLo)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
