package country_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/okian/countrydash/internal/domain/country"
	. "github.com/smartystreets/goconvey/convey"
)

const samplePayload = `[
  {
    "name": {"common": "Switzerland", "official": "Swiss Confederation"},
    "currencies": {"CHF": {"name": "Swiss franc", "symbol": "Fr."}},
    "languages": {"fra": "French", "gsw": "Swiss German", "ita": "Italian", "roh": "Romansh"},
    "population": 8654622,
    "area": 41284,
    "flags": {"png": "https://flagcdn.com/w320/ch.png", "svg": "https://flagcdn.com/ch.svg"},
    "borders": ["AUT", "FRA", "ITA", "LIE", "DEU"]
  },
  {
    "name": {"common": "Antarctica"},
    "currencies": {},
    "languages": {},
    "population": 1000,
    "area": 14000000,
    "flags": {"png": "https://flagcdn.com/w320/aq.png"}
  },
  {
    "name": {"common": "Nowhere"}
  }
]`

func TestDecode(t *testing.T) {
	Convey("Given a REST Countries payload", t, func() {
		records, err := country.Decode([]byte(samplePayload))

		Convey("Then every record is decoded", func() {
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 3)
		})

		Convey("And map entries keep their upstream order", func() {
			ch := records[0]
			So(ch.Languages.Keys(), ShouldResemble, []string{"fra", "gsw", "ita", "roh"})
			So(ch.FirstLanguage(), ShouldEqual, "French")
			So(ch.FirstCurrencyName(), ShouldEqual, "Swiss franc")
			So(ch.NeighbourCount(), ShouldEqual, 5)
			So(ch.FlagImageURL(), ShouldEqual, "https://flagcdn.com/w320/ch.png")
		})

		Convey("And empty maps fall back to empty strings", func() {
			aq := records[1]
			So(aq.FirstLanguage(), ShouldEqual, "")
			So(aq.FirstCurrencyName(), ShouldEqual, "")
			So(aq.Borders, ShouldBeNil)
			So(aq.NeighbourCount(), ShouldEqual, 0)
		})

		Convey("And missing numeric fields are absent and default to zero", func() {
			nowhere := records[2]
			So(nowhere.Population, ShouldBeNil)
			So(nowhere.Area, ShouldBeNil)
			So(nowhere.PopulationValue(), ShouldEqual, int64(0))
			So(nowhere.AreaValue(), ShouldEqual, 0.0)
			So(nowhere.Currencies.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given malformed payloads", t, func() {
		Convey("When the top level is not an array", func() {
			_, err := country.Decode([]byte(`{"name": "x"}`))
			So(errors.Is(err, country.ErrDecode), ShouldBeTrue)
		})

		Convey("When a language map is not an object", func() {
			_, err := country.Decode([]byte(`[{"languages": ["en"]}]`))
			So(errors.Is(err, country.ErrDecode), ShouldBeTrue)
		})

		Convey("When the payload is null", func() {
			records, err := country.Decode([]byte(`null`))
			So(err, ShouldBeNil)
			So(records, ShouldBeEmpty)
		})
	})
}

func TestOrdered(t *testing.T) {
	Convey("Given an ordered map", t, func() {
		m := country.NewOrdered(country.P("b", 2), country.P("a", 1))

		Convey("Then insertion order is kept", func() {
			So(m.Keys(), ShouldResemble, []string{"b", "a"})
			So(m.Values(), ShouldResemble, []int{2, 1})
		})

		Convey("When an existing key is overwritten", func() {
			m.Set("b", 3)
			So(m.Keys(), ShouldResemble, []string{"b", "a"})
			v, ok := m.Get("b")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 3)
		})

		Convey("When encoded back to JSON", func() {
			out, err := json.Marshal(m)
			So(err, ShouldBeNil)
			So(string(out), ShouldEqual, `{"b":2,"a":1}`)
		})

		Convey("When empty", func() {
			var empty country.Ordered[string]
			_, ok := empty.First()
			So(ok, ShouldBeFalse)
			out, err := json.Marshal(empty)
			So(err, ShouldBeNil)
			So(string(out), ShouldEqual, `{}`)
		})
	})
}

func TestFormatNumber(t *testing.T) {
	Convey("Given numbers rendered for text search", t, func() {
		So(country.FormatNumber(41284), ShouldEqual, "41284")
		So(country.FormatNumber(0.44), ShouldEqual, "0.44")
		So(country.FormatNumber(0), ShouldEqual, "0")
		So(country.FormatNumber(1e21), ShouldEqual, "1e+21")
		So(country.FormatNumber(1e-7), ShouldEqual, "1e-7")
		So(country.FormatNumber(math.NaN()), ShouldEqual, "NaN")
	})
}
