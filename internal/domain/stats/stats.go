// Package stats computes dashboard summary statistics over a full record set.
package stats

import (
	"fmt"
	"math"
	"slices"

	"github.com/okian/countrydash/internal/domain/country"
)

// TopN is the number of entries in the top language and currency lists.
const TopN = 5

// Count is one counter entry.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// String renders the entry as "<name> (<count>)".
func (c Count) String() string { return fmt.Sprintf("%s (%d)", c.Name, c.Count) }

// Stats is the dashboard summary. Counter slices are in first-encountered order.
type Stats struct {
	Count             int      `json:"count"`
	LanguageCounts    []Count  `json:"language_counts"`
	CurrencyCounts    []Count  `json:"currency_counts"`
	TotalPopulation   int64    `json:"total_population"`
	TotalArea         float64  `json:"total_area"`
	TotalNeighbours   int      `json:"total_neighbours"`
	AveragePopulation int64    `json:"average_population"`
	AverageArea       int64    `json:"average_area"`
	AverageNeighbours float64  `json:"average_neighbours"`
	TopLanguages      []string `json:"top_languages"`
	TopCurrencies     []string `json:"top_currencies"`
}

// counter tallies names keeping first-seen order.
type counter struct {
	index map[string]int
	items []Count
}

func newCounter() *counter { return &counter{index: make(map[string]int)} }

func (c *counter) add(name string) {
	if i, ok := c.index[name]; ok {
		c.items[i].Count++
		return
	}
	c.index[name] = len(c.items)
	c.items = append(c.items, Count{Name: name, Count: 1})
}

// top returns the n highest counts. Ties keep first-seen order.
func (c *counter) top(n int) []string {
	sorted := slices.Clone(c.items)
	slices.SortStableFunc(sorted, func(a, b Count) int { return b.Count - a.Count })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]string, len(sorted))
	for i, e := range sorted {
		out[i] = e.String()
	}
	return out
}

// Aggregate walks records once. Every language of a record adds one to
// that language; currencies are counted by display name the same way.
// Missing population, area or borders contribute 0.
func Aggregate(records []country.Record) Stats {
	langs := newCounter()
	curs := newCounter()
	s := Stats{Count: len(records)}

	for _, r := range records {
		for _, l := range r.Languages.Values() {
			langs.add(l)
		}
		for _, c := range r.Currencies.Values() {
			curs.add(c.Name)
		}
		s.TotalPopulation += r.PopulationValue()
		s.TotalArea += r.AreaValue()
		s.TotalNeighbours += r.NeighbourCount()
	}

	s.LanguageCounts = nonNil(langs.items)
	s.CurrencyCounts = nonNil(curs.items)
	s.TopLanguages = langs.top(TopN)
	s.TopCurrencies = curs.top(TopN)

	if s.Count > 0 {
		n := float64(s.Count)
		s.AveragePopulation = int64(roundHalfUp(float64(s.TotalPopulation) / n))
		s.AverageArea = int64(roundHalfUp(s.TotalArea / n))
		s.AverageNeighbours = roundHalfUp(float64(s.TotalNeighbours)/n*100) / 100
	}
	return s
}

// LanguageCount returns the tally for one language name.
func (s Stats) LanguageCount(name string) int { return lookup(s.LanguageCounts, name) }

// CurrencyCount returns the tally for one currency name.
func (s Stats) CurrencyCount(name string) int { return lookup(s.CurrencyCounts, name) }

func lookup(counts []Count, name string) int {
	for _, c := range counts {
		if c.Name == name {
			return c.Count
		}
	}
	return 0
}

func nonNil(items []Count) []Count {
	if items == nil {
		return []Count{}
	}
	return items
}

// roundHalfUp matches Math.round: halves go towards +Inf.
func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }
