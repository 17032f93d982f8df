package forecast_test

import (
	"math"
	"testing"

	"github.com/bloomgate/shipment-engine/forecast"
)

func TestDefaultPatterns_SumToOne(t *testing.T) {
	for name, p := range map[string]forecast.Pattern{
		"9-day":  forecast.DefaultPattern9,
		"14-day": forecast.DefaultPattern14,
	} {
		if sum := p.Sum(); math.Abs(sum-1.0) > forecast.SumToleranceStrict {
			t.Errorf("%s pattern sums to %.6f", name, sum)
		}
	}
}

func TestPattern_Normalize_InsideBandUntouched(t *testing.T) {
	p := forecast.Pattern{0.5, 0.5005}
	got, rescaled := p.Normalize(forecast.SumToleranceLoose)
	if rescaled {
		t.Error("pattern inside the loose band should not be rescaled")
	}
	if got[1] != 0.5005 {
		t.Errorf("pattern mutated: %v", got)
	}
}

func TestPattern_Normalize_OutsideBandRescaled(t *testing.T) {
	// GIVEN: A pattern summing to 2.0
	// THEN: Every element is divided by the sum; the result sums to exactly 1

	p := forecast.Pattern{0.8, 1.2}
	got, rescaled := p.Normalize(forecast.SumToleranceStrict)
	if !rescaled {
		t.Fatal("expected rescaling")
	}
	if got[0] != 0.4 || got[1] != 0.6 {
		t.Errorf("got %v, want [0.4 0.6]", got)
	}
}

func TestPattern_Normalize_StrictBandTighterThanLoose(t *testing.T) {
	// A 0.5% deviation passes the loose band but trips the strict one.
	p := forecast.Pattern{0.5, 0.505}

	if _, rescaled := p.Normalize(forecast.SumToleranceLoose); rescaled {
		t.Error("loose band should tolerate a 0.5% deviation")
	}
	if _, rescaled := p.Normalize(forecast.SumToleranceStrict); !rescaled {
		t.Error("strict band should rescale a 0.5% deviation")
	}
}
