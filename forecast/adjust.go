/*
adjust.go - Shipping-day calendar adjustment

PURPOSE:
  Actual shipments only leave on Monday, Wednesday, and Saturday. This pass
  moves every predicted date forward onto the nearest allowed shipping day
  and merges records that collapse onto the same (identity, date) bucket.

REMAP RULE (fixed):
  Mon -> Mon (+0)    Thu -> Sat (+2)
  Tue -> Wed (+1)    Fri -> Sat (+1)
  Wed -> Wed (+0)    Sat -> Sat (+0)
  Sun -> Mon (+1, the next calendar day)

PROPERTIES:
  - Conservation: box totals are unchanged; records are only moved/merged.
  - Idempotence: adjusting already-adjusted output is a no-op, since the
    three allowed weekdays all shift by zero.
  - Never errors: dates are guaranteed well-formed upstream.

SEE ALSO:
  - batch.go: Applies this pass over the complete multi-house record set
*/
package forecast

import (
	"sort"
	"time"
)

// shippingDayShift is the forward shift in days for each weekday,
// indexed by time.Weekday (Sunday = 0).
var shippingDayShift = [7]int{
	time.Sunday:    1, // next Monday
	time.Monday:    0,
	time.Tuesday:   1, // Wednesday
	time.Wednesday: 0,
	time.Thursday:  2, // Saturday
	time.Friday:    1, // Saturday
	time.Saturday:  0,
}

// mergeKey identifies a shipment bucket after remapping. The date is keyed
// by its string form so the struct stays safely comparable.
type mergeKey struct {
	producer  string
	houseName string
	variety   string
	color     string
	shape     string
	date      string
}

// AdjustToShippingDays remaps every record's date onto an allowed shipping
// day and sums the boxes of records that land on the same bucket. Output is
// sorted ascending by date (then by identity fields, for determinism).
//
// The adjuster must see the complete record set: merge keys may collide
// across the inputs it is given, so it cannot be applied incrementally.
func AdjustToShippingDays(records []Shipment) []Shipment {
	merged := make(map[mergeKey]Shipment, len(records))

	for _, r := range records {
		moved := r.Date.AddDays(shippingDayShift[r.Date.Weekday()])
		key := mergeKey{
			producer:  r.Producer,
			houseName: r.HouseName,
			variety:   r.Variety,
			color:     r.Color,
			shape:     r.Shape,
			date:      moved.String(),
		}
		bucket, ok := merged[key]
		if !ok {
			bucket = r
			bucket.Date = moved
			bucket.Boxes = 0
		}
		bucket.Boxes += r.Boxes
		merged[key] = bucket
	}

	adjusted := make([]Shipment, 0, len(merged))
	for _, r := range merged {
		adjusted = append(adjusted, r)
	}
	sort.Slice(adjusted, func(i, j int) bool {
		a, b := adjusted[i], adjusted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Producer != b.Producer {
			return a.Producer < b.Producer
		}
		if a.HouseName != b.HouseName {
			return a.HouseName < b.HouseName
		}
		if a.Variety != b.Variety {
			return a.Variety < b.Variety
		}
		if a.Color != b.Color {
			return a.Color < b.Color
		}
		return a.Shape < b.Shape
	})
	return adjusted
}
