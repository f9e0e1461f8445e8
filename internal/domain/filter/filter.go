// Package filter narrows a record sequence by population range and free text.
package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/countrydash/internal/domain/country"
)

// Criteria is the active filter configuration.
type Criteria struct {
	SearchText    string
	MinPopulation int64
	MaxPopulation *int64 // nil means unbounded
}

// Validate reports ErrInvalidPopulationRange when max < min.
func (c Criteria) Validate() error {
	if c.MaxPopulation != nil && *c.MaxPopulation < c.MinPopulation {
		return ErrInvalidPopulationRange
	}
	return nil
}

// Filter returns the records within the population range that match the
// search text. The input is never modified and source order is kept.
func Filter(records []country.Record, c Criteria) ([]country.Record, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	out := make([]country.Record, 0, len(records))
	search := strings.ToLower(c.SearchText)
	blank := strings.TrimSpace(c.SearchText) == ""
	for _, r := range records {
		if !c.inRange(r) {
			continue
		}
		if blank || Matches(r, search) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c Criteria) inRange(r country.Record) bool {
	pop := r.PopulationValue()
	if pop < c.MinPopulation {
		return false
	}
	return c.MaxPopulation == nil || pop <= *c.MaxPopulation
}

// Matches reports whether any searchable field of r contains needle.
// needle must already be lower-cased.
func Matches(r country.Record, needle string) bool {
	if contains(r.DisplayName(), needle) {
		return true
	}
	for _, cur := range r.Currencies.Values() {
		if contains(cur.Name, needle) || contains(cur.Symbol, needle) {
			return true
		}
	}
	for _, lang := range r.Languages.Values() {
		if contains(lang, needle) {
			return true
		}
	}
	if r.Population != nil && strings.Contains(strconv.FormatInt(*r.Population, 10), needle) {
		return true
	}
	if r.Area != nil && strings.Contains(country.FormatNumber(*r.Area), needle) {
		return true
	}
	return false
}

func contains(field, needle string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), needle)
}

// ParseCriteria builds Criteria from the raw text inputs of the table view.
// An empty min means 0 and an empty max means unbounded. Like a browser's
// parseInt, leading digits are used and trailing garbage is ignored. Bounds
// beyond int64 saturate to math.MaxInt64; negative bounds are rejected.
func ParseCriteria(search, minText, maxText string) (Criteria, error) {
	c := Criteria{SearchText: search}
	if strings.TrimSpace(minText) != "" {
		v, err := parseBound(minText)
		if err != nil {
			return Criteria{}, fmt.Errorf("min population: %w", err)
		}
		c.MinPopulation = v
	}
	if strings.TrimSpace(maxText) != "" {
		v, err := parseBound(maxText)
		if err != nil {
			return Criteria{}, fmt.Errorf("max population: %w", err)
		}
		c.MaxPopulation = &v
	}
	return c, nil
}

func parseBound(s string) (int64, error) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange) && v > 0:
		return math.MaxInt64, nil
	case err != nil:
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	case v < 0:
		return 0, fmt.Errorf("%w: %q", ErrNegativeBound, s)
	}
	return v, nil
}

// Inputs are the raw values shown in the filter controls.
type Inputs struct {
	Search        string `json:"search"`
	MinPopulation string `json:"min_population"`
	MaxPopulation string `json:"max_population"`
}

// Defaults returns the inputs restored by the reset action: empty search,
// min "0" and max set to the largest population in records. The max is
// empty when there are no records.
func Defaults(records []country.Record) Inputs {
	in := Inputs{MinPopulation: "0"}
	if len(records) == 0 {
		return in
	}
	var highest int64
	for i, r := range records {
		if p := r.PopulationValue(); i == 0 || p > highest {
			highest = p
		}
	}
	in.MaxPopulation = strconv.FormatInt(highest, 10)
	return in
}
