/*
generate.go - Single-house shipment curve

PURPOSE:
  Turns one house's attributes into a day-by-day run of Shipment records:
  compute the start date, the integer box total, apportion it over the
  distribution pattern, and emit one record per pattern slot.

ROUNDING:
  total_boxes = round(area * coefficient), rounded half away from zero via
  decimal.Decimal.Round. Using decimal avoids float drift on products like
  96.65 * 1.4 before the round.

SEE ALSO:
  - allocate.go: The apportionment step
  - batch.go:    Resolves defaults and coefficients before calling Generate
*/
package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Generate produces one house's shipment curve: len(in.Pattern) records with
// dates increasing one day at a time from BlackoutDate + DaysToStart. The
// emitted boxes sum to exactly round(Area * Coefficient).
//
// An empty Pattern falls back to DefaultPattern14. A pattern whose sum falls
// outside 1±SumToleranceLoose is rescaled to 1 and reported through the
// returned PatternWarning (nil when no correction happened).
//
// Generation is all-or-nothing: on error no records are returned.
func Generate(in GenerateInput) ([]Shipment, *PatternWarning, error) {
	if in.Area < 0 {
		return nil, nil, fmt.Errorf("%w: got %v", ErrNegativeArea, in.Area)
	}

	pattern := in.Pattern
	if len(pattern) == 0 {
		pattern = DefaultPattern14
	}

	var warning *PatternWarning
	sum := pattern.Sum()
	if normalized, rescaled := pattern.Normalize(SumToleranceLoose); rescaled {
		warning = &PatternWarning{Sum: sum, Tolerance: SumToleranceLoose}
		pattern = normalized
	}

	start := in.BlackoutDate.AddDays(in.DaysToStart)

	// Round half away from zero, matching decimal.Round semantics.
	total := decimal.NewFromFloat(in.Area).
		Mul(decimal.NewFromFloat(in.Coefficient)).
		Round(0).IntPart()
	if total < 0 {
		return nil, nil, fmt.Errorf("%w: area %v with coefficient %v yields %d boxes",
			ErrNegativeTotal, in.Area, in.Coefficient, total)
	}

	daily, err := Allocate(int(total), pattern)
	if err != nil {
		return nil, nil, err
	}

	records := make([]Shipment, len(daily))
	for i, boxes := range daily {
		records[i] = Shipment{
			Date:      start.AddDays(i),
			Producer:  in.Producer,
			HouseName: in.HouseName,
			Variety:   in.Variety,
			Color:     in.Color,
			Shape:     in.Shape,
			Boxes:     boxes,
		}
	}
	return records, warning, nil
}
