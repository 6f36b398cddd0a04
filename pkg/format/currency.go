// Package format renders currency, hour and percentage values for reports.
package format

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iwvelando/gig-planner/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return signed(amount, "%.2f", constants.CurrencyPlaces)
}

// WholeCurrency returns a currency string rounded to whole units (e.g., "$5,000").
func WholeCurrency(amount float64) string {
	return signed(amount, "%.0f", 0)
}

// Hours renders an hour quantity without trailing zeros (e.g., "75 hrs", "2.5 hrs").
func Hours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64) + " hrs"
}

// Percent renders a fraction as a percentage with one decimal (e.g., 0.9375 -> "93.8%").
func Percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*constants.PercentageMultiplier)
}

// signed groups the magnitude with an English printer and prefixes the sign,
// so a value that rounds to zero never shows as "-$0".
func signed(amount float64, verb string, places int) string {
	scale := math.Pow(10, float64(places))
	rounded := math.Round(math.Abs(amount)*scale) / scale
	formatted := message.NewPrinter(language.English).Sprintf(verb, rounded)
	if amount < 0 && rounded != 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}
