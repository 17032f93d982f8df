package forecast_test

import (
	"strings"
	"testing"
	"time"

	"github.com/bloomgate/shipment-engine/forecast"
)

func validRow(house string) forecast.HouseRow {
	return forecast.HouseRow{
		Producer:     "P1",
		HouseName:    house,
		Variety:      "Pink",
		Area:         100,
		BlackoutDate: forecast.NewDate(2023, time.October, 1),
		GrowthWeeks:  7,
		Color:        "pink",
		Shape:        "single",
	}
}

// =============================================================================
// SKIP-AND-REPORT SEMANTICS
// =============================================================================

func TestForecast_MissingBlackoutDate_RowSkippedBatchContinues(t *testing.T) {
	// GIVEN: Three rows, the middle one without a blackout date
	// THEN: Two rows produce records, one skip report is returned

	bad := validRow("B-2")
	bad.BlackoutDate = forecast.Date{}

	result := forecast.Forecast([]forecast.HouseRow{validRow("A-1"), bad, validRow("C-3")}, forecast.Options{
		Pattern: forecast.DefaultPattern9,
	})

	if len(result.Skipped) != 1 {
		t.Fatalf("got %d skips, want 1", len(result.Skipped))
	}
	if result.Skipped[0].Index != 1 || result.Skipped[0].HouseName != "B-2" {
		t.Errorf("unexpected skip report: %+v", result.Skipped[0])
	}
	if want := 2 * len(forecast.DefaultPattern9); len(result.Records) != want {
		t.Errorf("got %d records, want %d", len(result.Records), want)
	}
}

func TestForecast_NegativeArea_RowSkippedBatchContinues(t *testing.T) {
	bad := validRow("B-2")
	bad.Area = -5

	result := forecast.Forecast([]forecast.HouseRow{validRow("A-1"), bad}, forecast.Options{
		Pattern: forecast.DefaultPattern9,
	})

	if len(result.Skipped) != 1 {
		t.Fatalf("got %d skips, want 1", len(result.Skipped))
	}
	if !strings.Contains(result.Skipped[0].Reason, "area") {
		t.Errorf("skip reason should mention area: %q", result.Skipped[0].Reason)
	}
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestForecast_EmptyHouseName_PositionalPlaceholder(t *testing.T) {
	row := validRow("")
	result := forecast.Forecast([]forecast.HouseRow{row}, forecast.Options{Pattern: forecast.DefaultPattern9})

	if len(result.Records) == 0 {
		t.Fatal("expected records")
	}
	if got := result.Records[0].HouseName; got != "House_0" {
		t.Errorf("house name: got %q, want House_0", got)
	}
}

func TestForecast_ZeroGrowthWeeks_DefaultsToSeven(t *testing.T) {
	row := validRow("A-1")
	row.GrowthWeeks = 0

	result := forecast.Forecast([]forecast.HouseRow{row}, forecast.Options{Pattern: forecast.DefaultPattern9})
	want := forecast.NewDate(2023, time.November, 19) // blackout + 7*7 days
	if !result.Records[0].Date.Equal(want) {
		t.Errorf("first date: got %s, want %s", result.Records[0].Date, want)
	}
}

// =============================================================================
// COEFFICIENT RESOLUTION
// =============================================================================

func TestForecast_ExplicitCoefficient_Wins(t *testing.T) {
	row := validRow("A-1")
	coeff := 2.0
	row.Coefficient = &coeff

	result := forecast.Forecast([]forecast.HouseRow{row}, forecast.Options{Pattern: forecast.DefaultPattern9})
	if got := forecast.TotalBoxes(result.Records); got != 200 {
		t.Errorf("total boxes: got %d, want 200", got)
	}
}

func TestForecast_NilCoefficient_DerivedFromFloweringSeason(t *testing.T) {
	// GIVEN: Blackout 2023-10-01, 7 weeks -> flowering 2023-11-19 (autumn)
	// THEN: The autumn multiplier (1.3) applies: 100 * 1.3 = 130 boxes

	result := forecast.Forecast([]forecast.HouseRow{validRow("A-1")}, forecast.Options{
		Pattern: forecast.DefaultPattern9,
		Seasons: forecast.SeasonTable{Spring: 1.5, Summer: 1.4, Autumn: 1.3, Winter: 1.2},
	})

	if got := forecast.TotalBoxes(result.Records); got != 130 {
		t.Errorf("total boxes: got %d, want 130", got)
	}
}

func TestForecast_FloweringCrossesSeasonBoundary(t *testing.T) {
	// Blackout 2023-11-20 + 7 weeks = flowering 2024-01-08 -> winter (1.2).
	row := validRow("A-1")
	row.BlackoutDate = forecast.NewDate(2023, time.November, 20)

	result := forecast.Forecast([]forecast.HouseRow{row}, forecast.Options{Pattern: forecast.DefaultPattern9})
	if got := forecast.TotalBoxes(result.Records); got != 120 {
		t.Errorf("total boxes: got %d, want 120", got)
	}
}

// =============================================================================
// ADJUSTMENT PASS
// =============================================================================

func TestForecast_AdjustOption_AllowedWeekdaysOnly(t *testing.T) {
	result := forecast.Forecast([]forecast.HouseRow{validRow("A-1"), validRow("B-2")}, forecast.Options{
		Pattern:            forecast.DefaultPattern14,
		AdjustShippingDays: true,
	})

	for _, r := range result.Records {
		switch r.Date.Weekday() {
		case time.Monday, time.Wednesday, time.Saturday:
		default:
			t.Errorf("record on disallowed weekday %s (%s)", r.Date.Weekday(), r.Date)
		}
	}

	// Conservation across the whole batch: both houses flower in autumn.
	if got := forecast.TotalBoxes(result.Records); got != 260 {
		t.Errorf("total boxes: got %d, want 260", got)
	}
}

// =============================================================================
// PATTERN WARNING SURFACING
// =============================================================================

func TestForecast_SkewedPattern_SingleWarningForBatch(t *testing.T) {
	result := forecast.Forecast([]forecast.HouseRow{validRow("A-1"), validRow("B-2")}, forecast.Options{
		Pattern: forecast.Pattern{0.6, 0.6},
	})

	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1 (normalization happens once per batch)", len(result.Warnings))
	}
	if result.Warnings[0].Sum != 1.2 {
		t.Errorf("warning sum: got %v, want 1.2", result.Warnings[0].Sum)
	}
}
