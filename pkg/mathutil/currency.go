// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/yard-economics/pkg/constants"
)

// IsZero reports whether a value is below one cent in magnitude
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// WithinRelativeTolerance checks if two values agree to a fraction of the
// larger magnitude. Two zeros always agree.
func WithinRelativeTolerance(val1, val2, tolerance float64) bool {
	scale := math.Max(math.Abs(val1), math.Abs(val2))
	if scale == 0 {
		return true
	}
	return math.Abs(val1-val2) <= tolerance*scale
}

// Clamp bounds a value to [lo, hi]. Non-finite values collapse to lo.
func Clamp(val, lo, hi float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return lo
	}
	return math.Max(lo, math.Min(hi, val))
}

// IsFinite reports whether a value is neither NaN nor infinite
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// NonNegative floors a value at zero
func NonNegative(val float64) float64 {
	return math.Max(0, val)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
