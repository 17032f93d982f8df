/*
Package forecast predicts daily flower-shipment volumes for greenhouses.

PURPOSE:
  Given a blackout (light-deprivation start) date, a growth duration, and a
  harvest area, the engine forecasts how many boxes each house ships on each
  day, then optionally remaps those days onto the allowed shipping weekdays.

KEY CONCEPTS IN THIS FILE (types.go):
  - Shipment: One house's predicted boxes for one calendar day
  - HouseRow: One input row describing a greenhouse batch
  - GenerateInput: Fully-resolved arguments for a single-house forecast

DESIGN PRINCIPLES:
  1. Purity: Every operation is a function of its explicit arguments.
     No hidden session state, no I/O, no clocks.
  2. Conservation: box counts are apportioned exactly. For any house,
     the emitted boxes always sum to round(area * coefficient), before
     and after calendar adjustment.
  3. Recoverability: one bad input row is reported and skipped, never
     fatal to the batch.

USAGE:
  result := forecast.Forecast(rows, forecast.Options{
      Pattern:            forecast.DefaultPattern9,
      Seasons:            forecast.DefaultSeasons(),
      AdjustShippingDays: true,
  })

SEE ALSO:
  - allocate.go: Integer apportionment (Largest Remainder Method)
  - generate.go: Per-house shipment curve
  - adjust.go:   Shipping-day remap and merge
  - batch.go:    Multi-house driver with skip-and-report semantics
*/
package forecast

// =============================================================================
// SHIPMENT - Engine output unit
// =============================================================================

// Shipment is one house's predicted box count for one calendar day. Records
// have no identity beyond field equality: two records agreeing on every
// non-box field and the date are the same bucket and get summed, never
// duplicated, by the calendar adjuster.
type Shipment struct {
	Date      Date   `json:"date"`
	Producer  string `json:"producer"`
	HouseName string `json:"house_name"`
	Variety   string `json:"variety"`
	Color     string `json:"color"`
	Shape     string `json:"shape"`
	Boxes     int    `json:"boxes"`
}

// TotalBoxes sums the box counts of a record set.
func TotalBoxes(records []Shipment) int {
	total := 0
	for _, r := range records {
		total += r.Boxes
	}
	return total
}

// =============================================================================
// HOUSE ROW - Engine input unit
// =============================================================================

// HouseRow is one validated input row. The engine consumes it once and does
// not retain it.
type HouseRow struct {
	Producer     string   `json:"producer"`
	HouseName    string   `json:"house_name"`
	Variety      string   `json:"variety"`
	Area         float64  `json:"area_tsubo"` // harvest area in tsubo
	BlackoutDate Date     `json:"blackout_date"`
	GrowthWeeks  float64  `json:"growth_weeks"` // 0 means the 7-week default
	Coefficient  *float64 `json:"coefficient"`  // nil means derive from season
	Color        string   `json:"color"`
	Shape        string   `json:"shape"`
}

// GenerateInput carries fully-resolved arguments for one house: the
// coefficient is already derived, the growth duration already converted to
// days. Built by the batch driver or directly by callers.
type GenerateInput struct {
	Producer     string
	HouseName    string
	Variety      string
	Color        string
	Shape        string
	Area         float64
	BlackoutDate Date
	Coefficient  float64
	DaysToStart  int
	Pattern      Pattern
}
