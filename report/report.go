/*
Package report aggregates forecast output for operators.

PURPOSE:
  The engine emits maximally granular per-day, per-house records. This
  package builds the views operators actually read: a date-window slice,
  a pivot table over arbitrary identity keys, and per-day summary
  statistics for spotting the peak of the shipping curve.

DESIGN PRINCIPLES:
  Pure reductions over the record slice; no assumptions about upstream
  grouping. Records may arrive adjusted or unadjusted.

SEE ALSO:
  - forecast/: Produces the records consumed here
*/
package report

import (
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/bloomgate/shipment-engine/forecast"
)

// =============================================================================
// DATE WINDOW
// =============================================================================

// Window returns the records dated inside [from, to], inclusive on both ends.
func Window(records []forecast.Shipment, from, to forecast.Date) []forecast.Shipment {
	var out []forecast.Shipment
	for _, r := range records {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// AutoWindow returns the earliest and latest dates in a record set. ok is
// false for an empty set.
func AutoWindow(records []forecast.Shipment) (from, to forecast.Date, ok bool) {
	if len(records) == 0 {
		return forecast.Date{}, forecast.Date{}, false
	}
	from, to = records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(from) {
			from = r.Date
		}
		if r.Date.After(to) {
			to = r.Date
		}
	}
	return from, to, true
}

// =============================================================================
// PIVOT TABLE
// =============================================================================

// PivotKey selects an identity field to group by.
type PivotKey string

const (
	KeyProducer PivotKey = "producer"
	KeyHouse    PivotKey = "house_name"
	KeyVariety  PivotKey = "variety"
	KeyColor    PivotKey = "color"
	KeyShape    PivotKey = "shape"
)

// Pivot is a date-rows by composite-key-columns table of box sums.
type Pivot struct {
	Dates   []forecast.Date `json:"dates"`
	Columns []string        `json:"columns"`
	// Boxes[i][j] is the box sum for Dates[i] under Columns[j].
	Boxes [][]int `json:"boxes"`
}

func keyValue(r forecast.Shipment, key PivotKey) string {
	switch key {
	case KeyProducer:
		return r.Producer
	case KeyHouse:
		return r.HouseName
	case KeyVariety:
		return r.Variety
	case KeyColor:
		return r.Color
	case KeyShape:
		return r.Shape
	}
	return ""
}

// BuildPivot groups box sums by date and by the composite of the given keys.
// Column labels join the key values with " / ". Dates and columns are sorted
// ascending.
func BuildPivot(records []forecast.Shipment, keys []PivotKey) Pivot {
	type cell struct {
		date   string
		column string
	}

	sums := make(map[cell]int)
	dates := make(map[string]forecast.Date)
	columns := make(map[string]struct{})

	for _, r := range records {
		values := make([]string, len(keys))
		for i, k := range keys {
			values[i] = keyValue(r, k)
		}
		col := strings.Join(values, " / ")
		sums[cell{date: r.Date.String(), column: col}] += r.Boxes
		dates[r.Date.String()] = r.Date
		columns[col] = struct{}{}
	}

	p := Pivot{}
	for _, d := range dates {
		p.Dates = append(p.Dates, d)
	}
	sort.Slice(p.Dates, func(i, j int) bool { return p.Dates[i].Before(p.Dates[j]) })
	for c := range columns {
		p.Columns = append(p.Columns, c)
	}
	sort.Strings(p.Columns)

	p.Boxes = make([][]int, len(p.Dates))
	for i, d := range p.Dates {
		row := make([]int, len(p.Columns))
		for j, c := range p.Columns {
			row[j] = sums[cell{date: d.String(), column: c}]
		}
		p.Boxes[i] = row
	}
	return p
}

// =============================================================================
// SUMMARY STATISTICS
// =============================================================================

// Summary describes the shape of a shipping curve.
type Summary struct {
	TotalBoxes int           `json:"total_boxes"`
	Days       int           `json:"days"` // distinct shipping days
	PeakDate   forecast.Date `json:"peak_date"`
	PeakBoxes  int           `json:"peak_boxes"`
	MeanPerDay float64       `json:"mean_per_day"`
	StdDevDay  float64       `json:"std_dev_per_day"`
}

// Summarize reduces a record set to per-day totals and their statistics.
// Returns the zero Summary for an empty set.
func Summarize(records []forecast.Shipment) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	perDay := make(map[string]int)
	byKey := make(map[string]forecast.Date)
	for _, r := range records {
		perDay[r.Date.String()] += r.Boxes
		byKey[r.Date.String()] = r.Date
	}

	s := Summary{Days: len(perDay)}
	daily := make([]float64, 0, len(perDay))

	// Iterate in date order so equal peaks resolve to the earliest day.
	keys := make([]string, 0, len(perDay))
	for k := range perDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		boxes := perDay[k]
		s.TotalBoxes += boxes
		daily = append(daily, float64(boxes))
		if boxes > s.PeakBoxes {
			s.PeakBoxes = boxes
			s.PeakDate = byKey[k]
		}
	}

	mean, err := stats.Mean(daily)
	if err == nil {
		s.MeanPerDay = mean
	}
	sd, err := stats.StandardDeviation(daily)
	if err == nil {
		s.StdDevDay = sd
	}
	return s
}
