/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the API surface. Engine output types (Shipment,
  SkippedRow) already carry stable JSON tags and are reused directly;
  request types are API-specific so rows can arrive with string dates and
  partial fields.

VALIDATION:
  Request structs carry go-playground/validator tags, checked in handlers.
  Validation covers request structure only; per-row problems (unparseable
  blackout date, negative area) are skip-and-report, never a 400 for the
  whole batch.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/bloomgate/shipment-engine/forecast"
	"github.com/bloomgate/shipment-engine/report"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// HouseRowRequest is one input row as submitted by a client. The blackout
// date is a string ("2006-01-02" or "2006/01/02"); a row whose date fails to
// parse is skipped and reported, not rejected.
type HouseRowRequest struct {
	Producer     string   `json:"producer"`
	HouseName    string   `json:"house_name"`
	Variety      string   `json:"variety"`
	Area         float64  `json:"area_tsubo"`
	BlackoutDate string   `json:"blackout_date"`
	GrowthWeeks  float64  `json:"growth_weeks,omitempty"`
	Coefficient  *float64 `json:"coefficient,omitempty"`
	Color        string   `json:"color"`
	Shape        string   `json:"shape"`
}

// ForecastRequest runs the engine over a batch of rows.
type ForecastRequest struct {
	Houses []HouseRowRequest `json:"houses" validate:"required,min=1"`

	// Pattern overrides the configured distribution pattern when present.
	Pattern []float64 `json:"pattern,omitempty" validate:"omitempty,min=1,dive,gte=0"`

	// Adjust overrides the configured shipping-day toggle when present.
	Adjust *bool `json:"adjust,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// WarningDTO surfaces a pattern correction to the operator.
type WarningDTO struct {
	Message string  `json:"message"`
	Sum     float64 `json:"sum"`
}

// ForecastResponse carries the engine output plus reporting extras.
type ForecastResponse struct {
	Records  []forecast.Shipment   `json:"records"`
	Skipped  []forecast.SkippedRow `json:"skipped,omitempty"`
	Warnings []WarningDTO          `json:"warnings,omitempty"`
	Summary  report.Summary        `json:"summary"`
	Adjusted bool                  `json:"adjusted"`
}

// RunCreatedResponse acknowledges a persisted run.
type RunCreatedResponse struct {
	ID string `json:"id"`
	ForecastResponse
}

// RunDTO is a persisted run with its records.
type RunDTO struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Adjusted  bool                `json:"adjusted"`
	Records   []forecast.Shipment `json:"records"`
	Summary   report.Summary      `json:"summary"`
}

// DefaultsResponse exposes the built-in curves and configured multipliers so
// clients can pre-fill forms.
type DefaultsResponse struct {
	Patterns           map[string][]float64 `json:"patterns"`
	Seasons            forecast.SeasonTable `json:"seasons"`
	AdjustShippingDays bool                 `json:"adjust_shipping_days"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
