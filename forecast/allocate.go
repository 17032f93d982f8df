/*
allocate.go - Largest Remainder Method apportionment

PURPOSE:
  Distributes an integer total across N slots according to fractional
  proportions with zero rounding drift: the outputs always sum to exactly
  the input total, and each slot deviates from its ideal real-valued share
  by strictly less than one box.

ALGORITHM (Largest Remainder Method):
  1. raw_i   = total * proportions[i]
  2. base_i  = floor(raw_i)
  3. frac_i  = raw_i - base_i
  4. leftover = total - sum(base_i)
  5. Hand one extra unit each to the `leftover` slots with the largest
     fractional remainders. Ties go to the LOWEST original index - this is
     a deliberate, tested contract (stable sort, first-seen wins), not an
     accident of implementation.

PRECONDITIONS:
  - total >= 0 (ErrNegativeTotal otherwise)
  - proportions already normalized to sum to 1. Allocate performs no
    rescaling itself; Pattern.Normalize is applied once by the caller
    before any per-day split.

SEE ALSO:
  - pattern.go: Normalization that establishes the precondition
  - generate.go: The only in-package caller
*/
package forecast

import (
	"fmt"
	"math"
	"sort"
)

// Allocate distributes total across len(proportions) slots using the Largest
// Remainder Method. The returned slice is in original slot order and sums to
// exactly total.
func Allocate(total int, proportions []float64) ([]int, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeTotal, total)
	}

	parts := make([]int, len(proportions))
	fracs := make([]float64, len(proportions))

	assigned := 0
	for i, p := range proportions {
		raw := float64(total) * p
		base := int(math.Floor(raw))
		parts[i] = base
		fracs[i] = raw - float64(base)
		assigned += base
	}

	leftover := total - assigned
	if leftover < 0 || leftover > len(proportions) {
		sum := 0.0
		for _, p := range proportions {
			sum += p
		}
		return nil, fmt.Errorf("%w: sum is %.4f", ErrInvalidProportions, sum)
	}

	// Stable sort by remainder descending keeps ties in original index order.
	order := make([]int, len(proportions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fracs[order[a]] > fracs[order[b]]
	})

	for i := 0; i < leftover; i++ {
		parts[order[i]]++
	}

	return parts, nil
}
