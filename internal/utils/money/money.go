// Package money holds currency rounding helpers shared by services and
// repositories so every component rounds the same way.
package money

import "github.com/shopspring/decimal"

// DefaultPrecision is the number of minor-unit digits for the default currency.
const DefaultPrecision = 2

// Round rounds an amount half-up at the given minor-unit precision.
// decimal.Round implements round-half-away-from-zero, which matches
// round-half-up for the non-negative amounts produced by pricing.
func Round(amount decimal.Decimal, precision int32) decimal.Decimal {
	return amount.Round(precision)
}

// MinorUnit returns one minor currency unit at the given precision
// (0.01 for precision 2). Used to bound rounding drift assertions.
func MinorUnit(precision int32) decimal.Decimal {
	return decimal.New(1, -precision)
}

// FloorZero clamps negative amounts to zero.
func FloorZero(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return amount
}
