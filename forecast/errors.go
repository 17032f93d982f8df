/*
errors.go - Centralized error types for the forecast engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.

ERROR CATEGORIES:
  1. Invalid-argument errors - Numeric preconditions violated; fatal to the
     single call, never to the whole batch.
  2. Skipped rows - One input row could not be forecast; reported to the
     caller and excluded from output while the batch continues.
  3. Pattern warnings - A distribution pattern was corrected by rescaling;
     output is still produced, the operator is informed.

USAGE:
  Callers distinguish categories with errors.Is / IsInvalidArgument:

    if forecast.IsInvalidArgument(err) {
        // reject this row or request, keep going
    }

SEE ALSO:
  - allocate.go: Raises invalid-argument errors
  - batch.go: Produces SkippedRow reports
  - pattern.go: Produces PatternWarning
*/
package forecast

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNegativeTotal is returned when an allocation is asked to distribute
	// a negative box total.
	ErrNegativeTotal = errors.New("total must be non-negative")

	// ErrNegativeArea is returned when a house reports a negative floor area.
	ErrNegativeArea = errors.New("area must be non-negative")

	// ErrInvalidProportions is returned when a proportion sequence is so far
	// from summing to 1 that exact distribution is impossible. Callers are
	// expected to normalize patterns before allocating.
	ErrInvalidProportions = errors.New("proportions must sum to 1")

	// ErrRunNotFound is returned when a persisted forecast run does not exist.
	ErrRunNotFound = errors.New("forecast run not found")
)

// =============================================================================
// STRUCTURED REPORTS
// =============================================================================

// SkippedRow reports one input row that was excluded from a batch forecast.
// It is a report, not an error: the batch keeps going.
type SkippedRow struct {
	Index     int    `json:"index"`
	HouseName string `json:"house_name"`
	Reason    string `json:"reason"`
}

func (s SkippedRow) String() string {
	return fmt.Sprintf("row %d (%s): %s", s.Index, s.HouseName, s.Reason)
}

// PatternWarning reports that a distribution pattern did not sum to 1 within
// tolerance and was rescaled before use. Informational only.
type PatternWarning struct {
	Sum       float64 `json:"sum"`
	Tolerance float64 `json:"tolerance"`
}

func (w PatternWarning) Message() string {
	return fmt.Sprintf("distribution pattern sums to %.4f (tolerance ±%.3f); rescaled to 1.0", w.Sum, w.Tolerance)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInvalidArgument returns true if the error is due to an invalid numeric
// input on a single call.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrNegativeTotal) ||
		errors.Is(err, ErrNegativeArea) ||
		errors.Is(err, ErrInvalidProportions)
}
