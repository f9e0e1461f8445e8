// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/countrydash/internal/domain/chart"
	"github.com/okian/countrydash/internal/domain/filter"
	"github.com/okian/countrydash/internal/domain/sorting"
	"github.com/okian/countrydash/internal/domain/stats"
	"github.com/okian/countrydash/internal/domain/table"
	"github.com/okian/countrydash/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CountryDependencies
	DashboardDependencies
}

// CountryDependencies backs the table endpoints.
type CountryDependencies interface {
	Table(ctx context.Context, c filter.Criteria, spec sorting.Spec) (table.View, error)
	Defaults(ctx context.Context) filter.Inputs
}

// DashboardDependencies backs the dashboard endpoints.
type DashboardDependencies interface {
	Dashboard(ctx context.Context) stats.Stats
	Chart(ctx context.Context, metric chart.Metric) chart.Series
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	countriesHandler *CountriesHandler
	dashboardHandler *DashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		countriesHandler: NewCountriesHandler(deps),
		dashboardHandler: NewDashboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)
	route("GET /countries", "countries", s.countriesHandler.HandleList)
	route("GET /countries/defaults", "countries_defaults", s.countriesHandler.HandleDefaults)
	route("GET /dashboard/stats", "dashboard_stats", s.dashboardHandler.HandleStats)
	route("GET /dashboard/chart", "dashboard_chart", s.dashboardHandler.HandleChart)
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

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	if status >= http.StatusInternalServerError {
		logger.Get().Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
