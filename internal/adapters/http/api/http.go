// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LeifStrom/hiring/internal/adapters/repository"
	"github.com/LeifStrom/hiring/internal/adapters/sheets"
	"github.com/LeifStrom/hiring/internal/domain/model"
	"github.com/LeifStrom/hiring/internal/domain/scoring"
	"github.com/LeifStrom/hiring/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Worksheets returns the configured worksheet titles, active first.
	Worksheets() []string

	// Applicants returns the full worksheet snapshot.
	Applicants(ctx context.Context, worksheet string) ([]model.Applicant, error)

	// SaveRatings validates and persists one applicant's ratings.
	SaveRatings(ctx context.Context, worksheet, name string, r model.Ratings) error

	// Move relocates an applicant between worksheets.
	Move(ctx context.Context, from, to, name string) error

	// TopN returns the n highest-scored applicants of a worksheet.
	TopN(ctx context.Context, worksheet string, n int) ([]Entry, error)

	// Refresh drops cached snapshots so the next read hits the backend.
	Refresh(ctx context.Context)

	// TopNDefault and MaxTopLimit bound the ?limit query parameter.
	TopNDefault() int
	MaxTopLimit() int
}

// Entry mirrors the read shape returned by top-N queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	worksheetsHandler *WorksheetsHandler
	refreshHandler    *RefreshHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		worksheetsHandler: NewWorksheetsHandler(deps),
		refreshHandler:    NewRefreshHandler(deps),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
	mux.HandleFunc("/worksheets", MetricsMiddleware(s.worksheetsHandler.HandleListWorksheets, "worksheets"))
	mux.HandleFunc("/worksheets/", MetricsMiddleware(s.worksheetsHandler.HandleWorksheet, "worksheets"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates store and backend sentinels to HTTP responses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrApplicantNotFound),
		errors.Is(err, sheets.ErrWorksheetNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, scoring.ErrRatingRange),
		errors.Is(err, sheets.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err)
	case errors.Is(err, repository.ErrInvalidLimit):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, repository.ErrDuplicateName),
		errors.Is(err, sheets.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err)
	case errors.Is(err, sheets.ErrOutOfRange):
		// The row moved under us; the store already dropped its snapshot, so
		// a retry resolves fresh positions.
		writeError(w, http.StatusConflict, "stale_position", err)
	case errors.Is(err, sheets.ErrConnectivity):
		writeError(w, http.StatusServiceUnavailable, "backend_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
