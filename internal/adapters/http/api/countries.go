package api

import (
	"errors"
	"net/http"

	"github.com/okian/countrydash/internal/domain/filter"
	"github.com/okian/countrydash/internal/domain/sorting"
	"github.com/okian/countrydash/internal/domain/table"
)

// CountriesHandler serves the filtered and sorted country table.
type CountriesHandler struct {
	deps CountryDependencies
}

// NewCountriesHandler creates a new countries handler.
func NewCountriesHandler(deps CountryDependencies) *CountriesHandler {
	return &CountriesHandler{deps: deps}
}

// HandleList handles GET /countries.
//
// Query parameters: search, min_population, max_population, sort, direction
// and toggle. toggle applies a header click on top of sort/direction.
func (h *CountriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_countries"
	q := r.URL.Query()

	criteria, err := filter.ParseCriteria(q.Get("search"), q.Get("min_population"), q.Get("max_population"))
	if err != nil {
		code := "invalid_number"
		if errors.Is(err, filter.ErrNegativeBound) {
			code = "negative_population"
		}
		writeError(w, r, http.StatusBadRequest, code, Wrap(op, ErrInvalidFilter, err))
		return
	}
	spec, err := parseSort(q.Get("sort"), q.Get("direction"), q.Get("toggle"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_sort", Wrap(op, ErrBadRequest, err))
		return
	}

	view, err := h.deps.Table(r.Context(), criteria, spec)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error", Wrap(op, ErrInternal, err))
		return
	}
	if view.Invalid {
		writeJSON(w, http.StatusUnprocessableEntity, invalidRangeResponse{
			errorResponse: errorResponse{Code: "invalid_population_range", Message: table.InvalidRangeMessage},
			View:          view,
		})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleDefaults handles GET /countries/defaults.
func (h *CountriesHandler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Defaults(r.Context()))
}

type invalidRangeResponse struct {
	errorResponse
	View table.View `json:"view"`
}

func parseSort(key, direction, toggle string) (sorting.Spec, error) {
	k, err := sorting.ParseKey(key)
	if err != nil {
		return sorting.Spec{}, err
	}
	d, err := sorting.ParseDirection(direction)
	if err != nil {
		return sorting.Spec{}, err
	}
	spec := sorting.Spec{Key: k, Direction: d}
	if toggle == "" {
		return spec, nil
	}
	t, err := sorting.ParseKey(toggle)
	if err != nil {
		return sorting.Spec{}, err
	}
	return spec.Toggle(t), nil
}
