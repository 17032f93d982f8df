package forecast_test

import (
	"testing"
	"time"

	"github.com/bloomgate/shipment-engine/forecast"
)

func TestSeasonTable_EveryMonthResolvesToOneBand(t *testing.T) {
	seasons := forecast.SeasonTable{Spring: 1.5, Summer: 1.4, Autumn: 1.3, Winter: 1.2}

	want := map[time.Month]float64{
		time.January: 1.2, time.February: 1.2, time.December: 1.2,
		time.March: 1.5, time.April: 1.5, time.May: 1.5,
		time.June: 1.4, time.July: 1.4, time.August: 1.4,
		time.September: 1.3, time.October: 1.3, time.November: 1.3,
	}

	for month, coeff := range want {
		d := forecast.NewDate(2024, month, 15)
		if got := seasons.CoefficientFor(d); got != coeff {
			t.Errorf("%s: got %v, want %v", month, got, coeff)
		}
	}
}

func TestSeasonTable_UnsetBand_FallsBack(t *testing.T) {
	var seasons forecast.SeasonTable
	d := forecast.NewDate(2024, time.July, 1)
	if got := seasons.CoefficientFor(d); got != forecast.FallbackCoefficient {
		t.Errorf("got %v, want fallback %v", got, forecast.FallbackCoefficient)
	}
}

func TestFloweringDate_RoundsWeeksToWholeDays(t *testing.T) {
	// GIVEN: Blackout 2023-10-01 and 7.5 growth weeks
	// THEN: Flowering lands round(52.5) = 53 days later, on 2023-11-23

	blackout := forecast.NewDate(2023, time.October, 1)
	got := forecast.FloweringDate(blackout, 7.5)
	want := forecast.NewDate(2023, time.November, 23)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestFloweringDate_SevenWeeksDefault(t *testing.T) {
	blackout := forecast.NewDate(2023, time.October, 1)
	got := forecast.FloweringDate(blackout, 7)
	want := forecast.NewDate(2023, time.November, 19)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}
