package config_test

import (
	"testing"

	"github.com/okian/countrydash/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.SourceURL, convey.ShouldEqual, "https://restcountries.com/v3.1")
			convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 30_000)
			convey.So(cfg.RefreshSchedule, convey.ShouldBeEmpty)
			convey.So(cfg.MaxRecords, convey.ShouldEqual, 100_000)
		})

		convey.Convey("And the defaults validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
