package filter_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/countrydash/internal/domain/country"
	"github.com/okian/countrydash/internal/domain/filter"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRecords() []country.Record {
	return []country.Record{
		{
			Name:       country.Name{Common: "Japan"},
			Currencies: country.NewOrdered(country.P("JPY", country.Currency{Name: "Japanese yen", Symbol: "¥"})),
			Languages:  country.NewOrdered(country.P("jpn", "Japanese")),
			Population: country.Int64(125836021),
			Area:       country.Float64(377930),
		},
		{
			Name:       country.Name{Common: "Tuvalu"},
			Currencies: country.NewOrdered(country.P("AUD", country.Currency{Name: "Australian dollar", Symbol: "$"})),
			Languages:  country.NewOrdered(country.P("eng", "English"), country.P("tvl", "Tuvaluan")),
			Population: country.Int64(11792),
			Area:       country.Float64(26),
		},
		{
			Name:       country.Name{Common: "Monaco"},
			Currencies: country.NewOrdered(country.P("EUR", country.Currency{Name: "Euro", Symbol: "€"})),
			Languages:  country.NewOrdered(country.P("fra", "French")),
			Population: country.Int64(39244),
			Area:       country.Float64(2.02),
		},
		{
			Name:       country.Name{Common: "Bouvet Island"},
			Population: country.Int64(0),
			Area:       country.Float64(49),
		},
	}
}

func names(records []country.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.DisplayName()
	}
	return out
}

func TestFilter_PopulationRange(t *testing.T) {
	Convey("Given a record set", t, func() {
		records := sampleRecords()

		Convey("When the range covers everything", func() {
			got, err := filter.Filter(records, filter.Criteria{})

			Convey("Then all records are kept in source order", func() {
				So(err, ShouldBeNil)
				So(names(got), ShouldResemble, []string{"Japan", "Tuvalu", "Monaco", "Bouvet Island"})
			})
		})

		Convey("When the range is bounded on both sides", func() {
			got, err := filter.Filter(records, filter.Criteria{MinPopulation: 10000, MaxPopulation: country.Int64(39244)})

			Convey("Then bounds are inclusive", func() {
				So(err, ShouldBeNil)
				So(names(got), ShouldResemble, []string{"Tuvalu", "Monaco"})
			})
		})

		Convey("When max is below min", func() {
			got, err := filter.Filter(records, filter.Criteria{MinPopulation: 100, MaxPopulation: country.Int64(10)})

			Convey("Then the criteria are reported invalid", func() {
				So(errors.Is(err, filter.ErrInvalidPopulationRange), ShouldBeTrue)
				So(got, ShouldBeNil)
			})
		})

		Convey("When min equals max", func() {
			got, err := filter.Filter(records, filter.Criteria{MinPopulation: 0, MaxPopulation: country.Int64(0)})
			So(err, ShouldBeNil)
			So(names(got), ShouldResemble, []string{"Bouvet Island"})
		})

		Convey("Then the input slice is untouched", func() {
			before := names(records)
			_, _ = filter.Filter(records, filter.Criteria{SearchText: "tuv"})
			So(names(records), ShouldResemble, before)
		})
	})
}

func TestFilter_Search(t *testing.T) {
	Convey("Given a record set", t, func() {
		records := sampleRecords()
		search := func(text string) []string {
			got, err := filter.Filter(records, filter.Criteria{SearchText: text})
			So(err, ShouldBeNil)
			return names(got)
		}

		Convey("Whitespace-only search returns the range result", func() {
			So(search("   "), ShouldHaveLength, 4)
		})

		Convey("Name matches are case-insensitive", func() {
			So(search("JAP"), ShouldResemble, []string{"Japan"})
		})

		Convey("Currency names and symbols match", func() {
			So(search("dollar"), ShouldResemble, []string{"Tuvalu"})
			So(search("€"), ShouldResemble, []string{"Monaco"})
		})

		Convey("Any language matches, not only the first", func() {
			So(search("tuvaluan"), ShouldResemble, []string{"Tuvalu"})
		})

		Convey("Population and area match on their decimal form", func() {
			So(search("11792"), ShouldResemble, []string{"Tuvalu"})
			So(search("2.02"), ShouldResemble, []string{"Monaco"})
			So(search("49"), ShouldResemble, []string{"Bouvet Island"})
		})

		Convey("No match yields an empty, non-nil result", func() {
			got, err := filter.Filter(records, filter.Criteria{SearchText: "atlantis"})
			So(err, ShouldBeNil)
			So(got, ShouldNotBeNil)
			So(got, ShouldBeEmpty)
		})
	})
}

func TestParseCriteria(t *testing.T) {
	Convey("Given raw filter inputs", t, func() {
		Convey("Empty bounds mean zero and unbounded", func() {
			c, err := filter.ParseCriteria("x", "", "")
			So(err, ShouldBeNil)
			So(c.SearchText, ShouldEqual, "x")
			So(c.MinPopulation, ShouldEqual, int64(0))
			So(c.MaxPopulation, ShouldBeNil)
		})

		Convey("Leading digits are parsed", func() {
			c, err := filter.ParseCriteria("", "10", "2000abc")
			So(err, ShouldBeNil)
			So(c.MinPopulation, ShouldEqual, int64(10))
			So(*c.MaxPopulation, ShouldEqual, int64(2000))
		})

		Convey("Non-numeric bounds are rejected", func() {
			_, err := filter.ParseCriteria("", "abc", "")
			So(errors.Is(err, filter.ErrInvalidNumber), ShouldBeTrue)
		})

		Convey("Bounds beyond int64 saturate instead of failing", func() {
			c, err := filter.ParseCriteria("", "", "99999999999999999999")
			So(err, ShouldBeNil)
			So(*c.MaxPopulation, ShouldEqual, int64(math.MaxInt64))

			in, err := filter.Filter(sampleRecords(), c)
			So(err, ShouldBeNil)
			So(len(in), ShouldEqual, len(sampleRecords()))
		})

		Convey("Negative bounds are rejected", func() {
			_, err := filter.ParseCriteria("", "-5", "")
			So(errors.Is(err, filter.ErrNegativeBound), ShouldBeTrue)

			_, err = filter.ParseCriteria("", "", "-99999999999999999999")
			So(errors.Is(err, filter.ErrInvalidNumber), ShouldBeTrue)
		})

		Convey("An inverted range parses but does not validate", func() {
			c, err := filter.ParseCriteria("", "500", "5")
			So(err, ShouldBeNil)
			So(errors.Is(c.Validate(), filter.ErrInvalidPopulationRange), ShouldBeTrue)
		})
	})
}

func TestDefaults(t *testing.T) {
	Convey("Given the reset action", t, func() {
		Convey("With loaded records the max is the largest population", func() {
			in := filter.Defaults(sampleRecords())
			So(in, ShouldResemble, filter.Inputs{Search: "", MinPopulation: "0", MaxPopulation: "125836021"})
		})

		Convey("Without records the max is empty", func() {
			in := filter.Defaults(nil)
			So(in, ShouldResemble, filter.Inputs{MinPopulation: "0"})
		})
	})
}
