/*
handlers.go - HTTP API handlers for the forecast engine

PURPOSE:
  Exposes the forecast engine via REST. Handles JSON, request validation,
  and delegation to the engine, reporting, and store packages.

ENDPOINTS:
  POST /api/forecast      Run a forecast (not persisted)
  POST /api/runs          Run a forecast and persist it
  GET  /api/runs          List persisted runs
  GET  /api/runs/{id}     Fetch one persisted run
  GET  /api/defaults      Built-in patterns and configured seasons

ERROR HANDLING:
  - 400: Malformed JSON or structurally invalid request
  - 404: Unknown run ID
  - 500: Store failures
  Per-row problems never fail a batch; they come back in "skipped".

SEE ALSO:
  - dto.go:    Request/response shapes
  - server.go: Router and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bloomgate/shipment-engine/config"
	"github.com/bloomgate/shipment-engine/forecast"
	"github.com/bloomgate/shipment-engine/report"
	"github.com/bloomgate/shipment-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Config config.Config
	Log    *zap.Logger

	validate *validator.Validate
}

// NewHandler creates a handler with the given store and configuration.
func NewHandler(store *sqlite.Store, cfg config.Config, log *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Config:   cfg,
		Log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// =============================================================================
// FORECAST HANDLERS
// =============================================================================

// Forecast runs the engine over the submitted rows without persisting.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	_, resp, ok := h.runForecast(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateRun runs the engine and persists the outcome.
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	req, resp, ok := h.runForecast(w, r)
	if !ok {
		return
	}

	inputJSON, err := json.Marshal(req)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to snapshot input", err)
		return
	}

	id, err := h.Store.SaveRun(r.Context(), sqlite.RunRecord{
		Adjusted:  resp.Adjusted,
		InputJSON: string(inputJSON),
		Records:   resp.Records,
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to save run", err)
		return
	}

	h.Log.Info("forecast run saved",
		zap.String("run_id", id),
		zap.Int("records", len(resp.Records)),
		zap.Int("total_boxes", resp.Summary.TotalBoxes))

	writeJSON(w, http.StatusCreated, RunCreatedResponse{ID: id, ForecastResponse: resp})
}

// runForecast decodes, validates, and executes a forecast request. On
// failure it writes the error response itself and returns ok=false.
func (h *Handler) runForecast(w http.ResponseWriter, r *http.Request) (ForecastRequest, ForecastResponse, bool) {
	var req ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return req, ForecastResponse{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request", err)
		return req, ForecastResponse{}, false
	}

	pattern, err := h.Config.DistributionPattern()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Bad configured pattern", err)
		return req, ForecastResponse{}, false
	}
	if len(req.Pattern) > 0 {
		pattern = forecast.Pattern(req.Pattern)
	}

	adjust := h.Config.AdjustShippingDays
	if req.Adjust != nil {
		adjust = *req.Adjust
	}

	rows, preSkipped, rowIndex := h.buildRows(req.Houses)

	result := forecast.Forecast(rows, forecast.Options{
		Pattern:            pattern,
		Seasons:            h.Config.Seasons,
		AdjustShippingDays: adjust,
	})

	resp := ForecastResponse{
		Records:  result.Records,
		Skipped:  preSkipped,
		Summary:  report.Summarize(result.Records),
		Adjusted: adjust,
	}
	if resp.Records == nil {
		resp.Records = []forecast.Shipment{}
	}
	// Engine skip reports index into the rows it saw; map back to the
	// positions the client submitted.
	for _, s := range result.Skipped {
		s.Index = rowIndex[s.Index]
		resp.Skipped = append(resp.Skipped, s)
	}
	for _, warn := range result.Warnings {
		resp.Warnings = append(resp.Warnings, WarningDTO{Message: warn.Message(), Sum: warn.Sum})
	}
	return req, resp, true
}

// buildRows converts request rows to engine rows, skipping rows whose
// blackout date does not parse. rowIndex maps engine row positions back to
// submitted positions.
func (h *Handler) buildRows(houses []HouseRowRequest) ([]forecast.HouseRow, []forecast.SkippedRow, []int) {
	rows := make([]forecast.HouseRow, 0, len(houses))
	rowIndex := make([]int, 0, len(houses))
	var skipped []forecast.SkippedRow

	for i, house := range houses {
		name := house.HouseName
		if name == "" {
			name = fmt.Sprintf("House_%d", i)
		}

		date, err := forecast.ParseDate(house.BlackoutDate)
		if err != nil {
			skipped = append(skipped, forecast.SkippedRow{
				Index: i, HouseName: name, Reason: err.Error(),
			})
			continue
		}

		rows = append(rows, forecast.HouseRow{
			Producer:     house.Producer,
			HouseName:    name,
			Variety:      house.Variety,
			Area:         house.Area,
			BlackoutDate: date,
			GrowthWeeks:  house.GrowthWeeks,
			Coefficient:  house.Coefficient,
			Color:        house.Color,
			Shape:        house.Shape,
		})
		rowIndex = append(rowIndex, i)
	}
	return rows, skipped, rowIndex
}

// =============================================================================
// RUN HANDLERS
// =============================================================================

// ListRuns returns persisted run summaries, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}
	if runs == nil {
		runs = []sqlite.RunSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun returns one persisted run with its records.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.Store.GetRun(r.Context(), id)
	if errors.Is(err, forecast.ErrRunNotFound) {
		h.writeError(w, http.StatusNotFound, "Run not found", err)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load run", err)
		return
	}

	writeJSON(w, http.StatusOK, RunDTO{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Adjusted:  run.Adjusted,
		Records:   run.Records,
		Summary:   report.Summarize(run.Records),
	})
}

// =============================================================================
// DEFAULTS HANDLER
// =============================================================================

// GetDefaults exposes the built-in curves and configured seasons.
func (h *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DefaultsResponse{
		Patterns: map[string][]float64{
			"9-day":  forecast.DefaultPattern9,
			"14-day": forecast.DefaultPattern14,
		},
		Seasons:            h.Config.Seasons,
		AdjustShippingDays: h.Config.AdjustShippingDays,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
		h.Log.Warn("request failed", zap.Int("status", status), zap.String("error", msg), zap.Error(err))
	}
	writeJSON(w, status, resp)
}
