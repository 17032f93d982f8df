/*
batch.go - Multi-house forecast driver

PURPOSE:
  Runs the shipment generator over a batch of input rows, resolving defaults
  and seasonal coefficients per row, and optionally applies the shipping-day
  adjustment over the complete concatenated record set.

ERROR POLICY:
  A row without a usable blackout date, or with invalid numeric fields, is
  reported and skipped; the batch always completes. Pattern corrections are
  surfaced as warnings alongside the output.
*/
package forecast

import (
	"fmt"
	"math"
)

// DefaultGrowthWeeks is assumed when a row carries no growth duration.
const DefaultGrowthWeeks = 7.0

// Options configures a batch forecast.
type Options struct {
	// Pattern is the distribution pattern shared by all rows. Empty means
	// DefaultPattern14. Normalized once (strict band) before any row runs.
	Pattern Pattern

	// Seasons supplies coefficients for rows without one. The zero value
	// means DefaultSeasons.
	Seasons SeasonTable

	// AdjustShippingDays applies the Mon/Wed/Sat calendar pass to the
	// combined output.
	AdjustShippingDays bool
}

// Result is the outcome of a batch forecast.
type Result struct {
	Records  []Shipment       `json:"records"`
	Skipped  []SkippedRow     `json:"skipped,omitempty"`
	Warnings []PatternWarning `json:"warnings,omitempty"`
}

// Forecast predicts shipments for every row and concatenates the results.
// Rows that cannot be forecast are reported in Result.Skipped; the batch
// never fails as a whole.
func Forecast(rows []HouseRow, opts Options) Result {
	var result Result

	pattern := opts.Pattern
	if len(pattern) == 0 {
		pattern = DefaultPattern14
	}
	sum := pattern.Sum()
	if normalized, rescaled := pattern.Normalize(SumToleranceStrict); rescaled {
		result.Warnings = append(result.Warnings, PatternWarning{Sum: sum, Tolerance: SumToleranceStrict})
		pattern = normalized
	}

	seasons := opts.Seasons
	if seasons == (SeasonTable{}) {
		seasons = DefaultSeasons()
	}

	for i, row := range rows {
		houseName := row.HouseName
		if houseName == "" {
			houseName = fmt.Sprintf("House_%d", i)
		}

		if row.BlackoutDate.IsZero() {
			result.Skipped = append(result.Skipped, SkippedRow{
				Index: i, HouseName: houseName, Reason: "missing blackout date",
			})
			continue
		}

		weeks := row.GrowthWeeks
		if weeks <= 0 {
			weeks = DefaultGrowthWeeks
		}
		daysToStart := int(math.Round(weeks * 7))

		coeff := FallbackCoefficient
		if row.Coefficient != nil {
			coeff = *row.Coefficient
		} else {
			coeff = seasons.CoefficientFor(FloweringDate(row.BlackoutDate, weeks))
		}

		records, warning, err := Generate(GenerateInput{
			Producer:     row.Producer,
			HouseName:    houseName,
			Variety:      row.Variety,
			Color:        row.Color,
			Shape:        row.Shape,
			Area:         row.Area,
			BlackoutDate: row.BlackoutDate,
			Coefficient:  coeff,
			DaysToStart:  daysToStart,
			Pattern:      pattern,
		})
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{
				Index: i, HouseName: houseName, Reason: err.Error(),
			})
			continue
		}
		if warning != nil {
			result.Warnings = append(result.Warnings, *warning)
		}
		result.Records = append(result.Records, records...)
	}

	if opts.AdjustShippingDays {
		result.Records = AdjustToShippingDays(result.Records)
	}
	return result
}
