/*
season.go - Seasonal yield coefficients

PURPOSE:
  When an input row carries no explicit coefficient, one is derived from the
  expected flowering month. The year is partitioned into four bands, each
  with its own multiplier; every month resolves to exactly one band.

BANDS:
  Spring  Mar-May
  Summer  Jun-Aug
  Autumn  Sep-Nov
  Winter  Dec-Feb

The flowering date is blackout_date + round(growth_weeks * 7) days.
*/
package forecast

import (
	"math"
	"time"
)

// FallbackCoefficient is used when no coefficient is supplied and no band
// multiplier is configured.
const FallbackCoefficient = 1.2

// SeasonTable maps calendar seasons to yield multipliers.
type SeasonTable struct {
	Spring float64 `json:"spring" yaml:"spring"`
	Summer float64 `json:"summer" yaml:"summer"`
	Autumn float64 `json:"autumn" yaml:"autumn"`
	Winter float64 `json:"winter" yaml:"winter"`
}

// DefaultSeasons returns the stock multipliers.
func DefaultSeasons() SeasonTable {
	return SeasonTable{Spring: 1.5, Summer: 1.4, Autumn: 1.3, Winter: 1.2}
}

// CoefficientFor resolves the multiplier for a date's month. An unset (zero)
// band multiplier falls back to FallbackCoefficient.
func (s SeasonTable) CoefficientFor(d Date) float64 {
	var c float64
	switch d.Month() {
	case time.March, time.April, time.May:
		c = s.Spring
	case time.June, time.July, time.August:
		c = s.Summer
	case time.September, time.October, time.November:
		c = s.Autumn
	default: // December, January, February
		c = s.Winter
	}
	if c <= 0 {
		return FallbackCoefficient
	}
	return c
}

// FloweringDate estimates when a batch flowers: the blackout date plus the
// growth duration rounded to whole days.
func FloweringDate(blackout Date, growthWeeks float64) Date {
	return blackout.AddDays(int(math.Round(growthWeeks * 7)))
}
