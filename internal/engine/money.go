package engine

import "github.com/shopspring/decimal"

// roundCents rounds a monetary value to currency precision. Inputs are
// sanitized first; decimal.NewFromFloat panics on NaN/Inf.
func roundCents(v float64) float64 {
	v = sanitizeFloat(v)
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// roundPct rounds a percentage to two decimal places for presentation.
func roundPct(v float64) float64 {
	v = sanitizeFloat(v)
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
