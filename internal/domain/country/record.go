// Package country contains the country record model shared by every pipeline stage.
package country

import (
	"math"
	"strconv"
	"strings"
)

// Name holds the names reported for a country.
type Name struct {
	Common   string `json:"common"`
	Official string `json:"official,omitempty"`
}

// Currency describes one accepted currency.
type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// Flags holds the flag image locations. The pipeline treats them as opaque.
type Flags struct {
	PNG string `json:"png,omitempty"`
	SVG string `json:"svg,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Currencies maps a currency code to its details in upstream order.
type Currencies = Ordered[Currency]

// Languages maps a language code to its display name in upstream order.
type Languages = Ordered[string]

// Record is one country as supplied by the record source. Records are
// treated as immutable once decoded.
type Record struct {
	Name       Name       `json:"name"`
	Currencies Currencies `json:"currencies"`
	Languages  Languages  `json:"languages"`
	Population *int64     `json:"population,omitempty"` // nil when absent
	Area       *float64   `json:"area,omitempty"`       // nil when absent
	Flags      Flags      `json:"flags"`
	Borders    []string   `json:"borders,omitempty"` // nil when the field set did not include borders
}

// DisplayName returns the common name, possibly empty.
func (r Record) DisplayName() string { return r.Name.Common }

// FlagImageURL returns the PNG flag location.
func (r Record) FlagImageURL() string { return r.Flags.PNG }

// PopulationValue returns the population, or 0 when absent.
func (r Record) PopulationValue() int64 {
	if r.Population == nil {
		return 0
	}
	return *r.Population
}

// AreaValue returns the area, or 0 when absent.
func (r Record) AreaValue() float64 {
	if r.Area == nil {
		return 0
	}
	return *r.Area
}

// NeighbourCount returns the number of bordering countries, 0 when unknown.
func (r Record) NeighbourCount() int { return len(r.Borders) }

// FirstCurrencyName returns the name of the first currency or "".
func (r Record) FirstCurrencyName() string {
	c, ok := r.Currencies.First()
	if !ok {
		return ""
	}
	return c.Name
}

// FirstLanguage returns the first language name or "".
func (r Record) FirstLanguage() string {
	l, ok := r.Languages.First()
	if !ok {
		return ""
	}
	return l
}

// Int64 returns a pointer to v. Handy for building records in code.
func Int64(v int64) *int64 { return &v }

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// FormatNumber renders v the way a browser's Number#toString does: the
// shortest round-trip decimal, switching to exponent form outside
// [1e-6, 1e21).
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
