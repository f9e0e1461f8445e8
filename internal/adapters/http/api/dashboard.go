package api

import (
	"net/http"

	"github.com/okian/countrydash/internal/domain/chart"
)

// DashboardHandler serves the aggregate statistics and the top-20 chart.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleStats handles GET /dashboard/stats.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Dashboard(r.Context()))
}

// HandleChart handles GET /dashboard/chart?metric=population|area.
func (h *DashboardHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard_chart"
	metric, err := chart.ParseMetric(r.URL.Query().Get("metric"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_metric", Wrap(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Chart(r.Context(), metric))
}
