// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"github.com/iwvelando/gig-planner/pkg/constants"
	"github.com/shopspring/decimal"
)

// ToCents converts a currency amount into whole cents, rounding half away
// from zero. The conversion goes through a decimal so that amounts such as
// 0.29 do not pick up binary floating-point error.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces).Shift(constants.CurrencyPlaces).IntPart()
}

// FromCents converts whole cents back into a currency amount.
func FromCents(cents int64) float64 {
	value, _ := decimal.New(cents, -constants.CurrencyPlaces).Float64()
	return value
}

// SumCurrency adds currency amounts exactly, returning the rounded total.
func SumCurrency(amounts ...float64) float64 {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces))
	}
	value, _ := total.Float64()
	return value
}
