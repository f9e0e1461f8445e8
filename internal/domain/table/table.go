// Package table projects filtered and sorted records into display rows.
package table

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/okian/countrydash/internal/domain/country"
	"github.com/okian/countrydash/internal/domain/filter"
	"github.com/okian/countrydash/internal/domain/sorting"
)

// InvalidRangeMessage is shown instead of rows while the range is invalid.
const InvalidRangeMessage = "Max population must be greater than or equal to min population."

// Row is one display-ready table row.
type Row struct {
	Name       string `json:"name"`
	Currencies string `json:"currencies"`
	Languages  string `json:"languages"`
	Population string `json:"population"`
	Area       string `json:"area"`
	FlagURL    string `json:"flag_url"`
	FlagAlt    string `json:"flag_alt"`
}

// Cells returns the textual cells in column order, without the flag.
func (r Row) Cells() []string {
	return []string{r.Name, r.Currencies, r.Languages, r.Population, r.Area}
}

// Column is a table header.
type Column struct {
	Key       sorting.Key `json:"key"`
	Label     string      `json:"label"`
	Indicator string      `json:"indicator,omitempty"`
}

// View is the table as the view layer renders it. When Invalid is set,
// Rows is empty and Message explains why.
type View struct {
	Columns []Column     `json:"columns"`
	Rows    []Row        `json:"rows"`
	Sort    sorting.Spec `json:"sort"`
	Total   int          `json:"total"`
	Invalid bool         `json:"invalid"`
	Message string       `json:"message,omitempty"`
}

// Headers returns the column labels including the sort indicator.
func (v View) Headers() []string {
	out := make([]string, 0, len(v.Columns)+1)
	for _, c := range v.Columns {
		h := c.Label
		if c.Indicator != "" {
			h += " " + c.Indicator
		}
		out = append(out, h)
	}
	return out
}

// Build filters and sorts records and renders the rows. An invalid range
// yields an Invalid view with no rows and a nil error; other errors are
// returned as-is.
func Build(records []country.Record, c filter.Criteria, spec sorting.Spec) (View, error) {
	v := View{Columns: columns(spec), Sort: spec, Total: len(records), Rows: []Row{}}

	filtered, err := filter.Filter(records, c)
	if errors.Is(err, filter.ErrInvalidPopulationRange) {
		v.Invalid = true
		v.Message = InvalidRangeMessage
		return v, nil
	}
	if err != nil {
		return View{}, err
	}
	v.Rows = Rows(sorting.Sort(filtered, spec))
	return v, nil
}

func columns(spec sorting.Spec) []Column {
	out := make([]Column, len(sorting.Keys))
	for i, k := range sorting.Keys {
		out[i] = Column{Key: k, Label: string(k), Indicator: spec.Indicator(k)}
	}
	return out
}

// Rows renders records in the given order.
func Rows(records []country.Record) []Row {
	p := message.NewPrinter(language.English)
	out := make([]Row, len(records))
	for i, r := range records {
		out[i] = Row{
			Name:       r.DisplayName(),
			Currencies: currencies(r),
			Languages:  strings.Join(r.Languages.Values(), ", "),
			Population: formatPopulation(p, r),
			Area:       formatArea(p, r),
			FlagURL:    r.FlagImageURL(),
			FlagAlt:    "Flag of " + r.DisplayName(),
		}
	}
	return out
}

func currencies(r country.Record) string {
	parts := make([]string, 0, r.Currencies.Len())
	for _, c := range r.Currencies.Values() {
		parts = append(parts, c.Name+" ("+c.Symbol+")")
	}
	return strings.Join(parts, ", ")
}

func formatPopulation(p *message.Printer, r country.Record) string {
	if r.Population == nil {
		return ""
	}
	return p.Sprintf("%v", number.Decimal(*r.Population))
}

func formatArea(p *message.Printer, r country.Record) string {
	if r.Area == nil {
		return ""
	}
	return p.Sprintf("%v", number.Decimal(*r.Area, number.MaxFractionDigits(3)))
}
