package domain

import "math"

// FiniteOr returns v when it is a finite number, otherwise the fallback.
// This is the explicit parse-or-default step for advisory numeric inputs:
// the engine never rejects bad data, it degrades to a documented default.
func FiniteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// NonNegativeOr returns v when it is finite and >= 0, otherwise the fallback.
func NonNegativeOr(v, fallback float64) float64 {
	v = FiniteOr(v, fallback)
	if v < 0 {
		return fallback
	}
	return v
}
