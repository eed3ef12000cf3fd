// Package money centralizes the monetary rounding policy.
package money

import "github.com/shopspring/decimal"

// Epsilon is the tolerance used when deciding a balance is settled.
var Epsilon = decimal.NewFromFloat(0.01)

// Round2 rounds a monetary amount to 2 decimal places, half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// IsSettled reports whether a remaining balance is zero within Epsilon.
func IsSettled(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Epsilon)
}
