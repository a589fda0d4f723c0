// Package helpers provides small numeric conversion utilities shared by the
// wire codec and the fragment engine. They clamp instead of truncating so a
// hostile or oversized count can never wrap around in a 16-bit wire field.
package helpers

import "math"

// ClampInt restricts v to the range [lowerLimit, upperLimit].
func ClampInt(v, lowerLimit, upperLimit int) int {
	if v < lowerLimit {
		return lowerLimit
	}
	if v > upperLimit {
		return upperLimit
	}
	return v
}

// ClampIntToUint16 converts v to uint16 with clamping.
// Values below 0 become 0; values above math.MaxUint16 become math.MaxUint16.
func ClampIntToUint16(v int) uint16 {
	clamped := ClampInt(v, 0, math.MaxUint16)
	return uint16(clamped) //nolint:gosec // clamped to valid range
}

// ClampFloat restricts v to the range [lowerLimit, upperLimit].
// NaN clamps to the lower limit.
func ClampFloat(v, lowerLimit, upperLimit float64) float64 {
	if math.IsNaN(v) || v < lowerLimit {
		return lowerLimit
	}
	if v > upperLimit {
		return upperLimit
	}
	return v
}
