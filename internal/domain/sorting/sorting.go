// Package sorting orders records by one table column.
package sorting

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/countrydash/internal/domain/country"
)

// Sentinel kinds for sort spec parsing.
var (
	ErrUnknownKey       = errors.New("unknown sort key")
	ErrUnknownDirection = errors.New("unknown sort direction")
)

// Key identifies the sortable column.
type Key string

// Sortable columns. None leaves the order untouched.
const (
	None       Key = ""
	Name       Key = "Name"
	Currency   Key = "Currency"
	Language   Key = "Language"
	Population Key = "Population"
	Area       Key = "Area"
)

// Keys lists the sortable columns in table order.
var Keys = []Key{Name, Currency, Language, Population, Area}

// Direction of the active sort.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Spec is the active sort column and direction.
type Spec struct {
	Key       Key       `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle applies a header click: the active key flips direction, any other
// key becomes active in ascending order.
func (s Spec) Toggle(k Key) Spec {
	if s.Key == k && k != None {
		if s.Direction == Descending {
			return Spec{Key: k, Direction: Ascending}
		}
		return Spec{Key: k, Direction: Descending}
	}
	return Spec{Key: k, Direction: Ascending}
}

// Indicator returns the header marker for column k under s.
func (s Spec) Indicator(k Key) string {
	if s.Key != k || k == None {
		return ""
	}
	if s.Direction == Descending {
		return "▼"
	}
	return "▲"
}

// ParseKey accepts a column name case-insensitively. Empty means None.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return None, nil
	}
	for _, k := range Keys {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// ParseDirection accepts asc/ascending and desc/descending. Empty means
// ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// Sort returns a new slice ordered by spec. The sort is stable and
// descending negates the comparison, so equal keys keep their input order
// in both directions.
func Sort(records []country.Record, spec Spec) []country.Record {
	out := slices.Clone(records)
	if spec.Key == None || len(out) < 2 {
		return out
	}

	compare := comparator(spec.Key)
	if compare == nil {
		return out
	}
	if spec.Direction == Descending {
		asc := compare
		compare = func(a, b country.Record) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func comparator(k Key) func(a, b country.Record) int {
	switch k {
	case Name:
		return byString(country.Record.DisplayName)
	case Currency:
		return byString(country.Record.FirstCurrencyName)
	case Language:
		return byString(country.Record.FirstLanguage)
	case Population:
		return func(a, b country.Record) int { return cmp.Compare(a.PopulationValue(), b.PopulationValue()) }
	case Area:
		return func(a, b country.Record) int { return cmp.Compare(a.AreaValue(), b.AreaValue()) }
	default:
		return nil
	}
}

// byString compares extracted strings with English collation. A collator
// keeps internal buffers, so each comparator owns one.
func byString(extract func(country.Record) string) func(a, b country.Record) int {
	c := collate.New(language.English)
	return func(a, b country.Record) int {
		return c.CompareString(extract(a), extract(b))
	}
}
