/*
pattern.go - Distribution patterns (fractional shipment curves)

PURPOSE:
  A Pattern describes what fraction of a house's total box count ships on
  each day offset from the start date. Two built-in curves exist, measured
  from historical shipment data: a 9-day curve and a 14-day curve. Both
  peak early in the window and taper off.

TOLERANCE BANDS:
  The system historically used two different "does this sum to 1?" bands:
  a strict ±0.001 band where operators enter patterns, and a loose ±0.01
  band inside the generator. Both are kept as named constants rather than
  silently unified: the strict band catches operator typos at the edge,
  the loose band only defends the allocation math against genuinely broken
  inputs.

SEE ALSO:
  - allocate.go: Consumes normalized patterns
  - generate.go: Applies the loose band before allocating
*/
package forecast

// Tolerance half-widths for the pattern sum check. A pattern whose sum falls
// within 1±tolerance is used as-is; outside the band it is rescaled to sum
// to exactly 1.
const (
	// SumToleranceStrict is the input/config-level band (operator-facing).
	SumToleranceStrict = 0.001

	// SumToleranceLoose is the generator-level band.
	SumToleranceLoose = 0.01
)

// Pattern is an ordered sequence of non-negative fractions, one per day
// offset from the shipment start date. Invariant: sums to 1 (enforced via
// Normalize before allocation).
type Pattern []float64

// DefaultPattern9 is the built-in 9-day shipment curve.
var DefaultPattern9 = Pattern{
	0.0224, 0.1269, 0.2148, 0.2218, 0.1746, 0.1212, 0.0783, 0.0325, 0.0075,
}

// DefaultPattern14 is the built-in 14-day shipment curve, and the fallback
// when a caller supplies no pattern at all.
var DefaultPattern14 = Pattern{
	0.0314, 0.0952, 0.1404, 0.1543, 0.1442, 0.1218, 0.0958,
	0.0716, 0.0515, 0.0358, 0.0244, 0.0162, 0.0106, 0.0068,
}

// Sum returns the total of all fractions.
func (p Pattern) Sum() float64 {
	total := 0.0
	for _, f := range p {
		total += f
	}
	return total
}

// Normalize returns a pattern guaranteed to sum to 1 and whether rescaling
// was needed. Sums within 1±tolerance are tolerated uncorrected; outside the
// band every element is divided by the sum.
func (p Pattern) Normalize(tolerance float64) (Pattern, bool) {
	sum := p.Sum()
	if sum > 1-tolerance && sum < 1+tolerance {
		return p, false
	}
	scaled := make(Pattern, len(p))
	for i, f := range p {
		scaled[i] = f / sum
	}
	return scaled, true
}

// Clone returns an independent copy.
func (p Pattern) Clone() Pattern {
	c := make(Pattern, len(p))
	copy(c, p)
	return c
}
