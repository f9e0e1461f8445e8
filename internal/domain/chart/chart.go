// Package chart shapes the top records by one metric into a bar series.
package chart

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/okian/countrydash/internal/domain/country"
)

// Limit is the maximum number of bars in a series.
const Limit = 20

// Placeholder labels a record whose name is missing.
const Placeholder = "-"

// ErrUnknownMetric is returned by ParseMetric for unsupported values.
var ErrUnknownMetric = errors.New("unknown chart metric")

// Metric selects the charted value. It has two states flipped by Toggle.
type Metric string

const (
	Population Metric = "population"
	Area       Metric = "area"
)

// Toggle flips between population and area.
func (m Metric) Toggle() Metric {
	if m == Area {
		return Population
	}
	return Area
}

// Title returns the capitalised metric name.
func (m Metric) Title() string {
	s := string(m)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseMetric accepts population or area. Empty means population.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case "", Population:
		return Population, nil
	case Area:
		return Area, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// Point is one labelled bar.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is the display-ready chart data.
type Series struct {
	Metric Metric  `json:"metric"`
	Title  string  `json:"title"`
	Points []Point `json:"points"`
}

// Labels returns the point labels in order.
func (s Series) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Label
	}
	return out
}

type candidate struct {
	label string
	value float64
}

// Project keeps the records that have a numeric value for metric, orders
// them by that value descending (ties in source order) and returns the
// first Limit as a series.
func Project(records []country.Record, metric Metric) Series {
	cands := make([]candidate, 0, len(records))
	for _, r := range records {
		v, ok := value(r, metric)
		if !ok {
			continue
		}
		label := r.DisplayName()
		if label == "" {
			label = Placeholder
		}
		cands = append(cands, candidate{label: label, value: v})
	}

	slices.SortStableFunc(cands, func(a, b candidate) int { return cmp.Compare(b.value, a.value) })
	if len(cands) > Limit {
		cands = cands[:Limit]
	}

	points := make([]Point, len(cands))
	for i, c := range cands {
		points[i] = Point{Label: c.label, Value: c.value}
	}
	return Series{
		Metric: metric,
		Title:  "Top 20 Countries by " + metric.Title(),
		Points: points,
	}
}

func value(r country.Record, m Metric) (float64, bool) {
	switch m {
	case Population:
		if r.Population == nil {
			return 0, false
		}
		return float64(*r.Population), true
	case Area:
		if r.Area == nil || math.IsNaN(*r.Area) {
			return 0, false
		}
		return *r.Area, true
	default:
		return 0, false
	}
}
