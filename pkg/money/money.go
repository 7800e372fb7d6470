package money

import "github.com/shopspring/decimal"

// Epsilon absorbs float rounding when comparing paid amounts against dues.
const Epsilon = 1e-6

// Round2 rounds v to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
