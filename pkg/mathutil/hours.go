package mathutil

import (
	"math"

	"github.com/iwvelando/gig-planner/pkg/constants"
)

// HourTolerance returns the slack allowed when comparing cumulative hours to
// a budget. It scales with the budget so large budgets are not held to an
// absolute epsilon.
func HourTolerance(budget float64) float64 {
	return constants.RelativeEpsilon * math.Max(1, math.Abs(budget))
}

// Fraction returns value/total, or 0 when total is zero.
func Fraction(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total
}

// ScaleToUnits converts a real quantity into whole units of 1/resolution.
// The second return value reports whether the quantity lands on a unit
// boundary within tolerance.
func ScaleToUnits(value float64, resolution int) (int64, bool) {
	scaled := value * float64(resolution)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) || math.Abs(scaled) >= math.MaxInt64/2 {
		return 0, false
	}
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > constants.RelativeEpsilon*math.Max(1, math.Abs(scaled)) {
		return int64(rounded), false
	}
	return int64(rounded), true
}

// FloorUnits converts a budget into whole units of 1/resolution, rounding
// down except where the value sits within tolerance of the next unit.
func FloorUnits(value float64, resolution int) (int64, bool) {
	scaled := value * float64(resolution)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) || scaled >= math.MaxInt64/2 {
		return 0, false
	}
	return int64(math.Floor(scaled + constants.RelativeEpsilon*math.Max(1, math.Abs(scaled)))), true
}
