package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a custom registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then options are applied", func() {
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.RefreshInterval(), ShouldEqual, 5*time.Second)

				manager.invalidFilters.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_test_prefix_invalid_filter_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetValue(), ShouldEqual, "test")
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording fetch outcomes", func() {
			before := testutil.ToFloat64(globalManager.fetchTotal.WithLabelValues("ok"))
			RecordFetch("ok")
			RecordFetchLatency(120)

			Convey("Then the counter increases", func() {
				So(testutil.ToFloat64(globalManager.fetchTotal.WithLabelValues("ok")), ShouldEqual, before+1)
			})
		})

		Convey("When recording repository metrics", func() {
			UpdateRepositoryRecordsTotal(250)
			So(testutil.ToFloat64(globalManager.repositoryRecordsTotal), ShouldEqual, 250.0)
			So(func() {
				RecordRepositorySnapshotRebuildDuration(1)
				UpdateRepositorySnapshotLastUnix(float64(time.Now().Unix()))
				UpdateRepositorySnapshotLastDurationMs(1)
				IncrementRepositorySnapshotCount()
				RecordRepositoryQueryLatency(0.01)
			}, ShouldNotPanic)
		})

		Convey("When recording pipeline and HTTP metrics", func() {
			So(func() {
				RecordPipelineLatency("filter", 0.2)
				RecordInvalidFilter()
				RecordHTTPRequest("countries", "GET", "200")
				RecordHTTPRequestDuration("countries", "GET", "200", 3)
			}, ShouldNotPanic)
		})

		Convey("When recording error and system metrics", func() {
			So(func() {
				RecordErrorByComponent("source", "fetch")
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("countries", "GET", "client_error")
				RecordErrorLatency("http", "client_error", 2)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("Then the registry exposes the countrydash namespace", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "countrydash_service_"), ShouldBeTrue)
			}
		})
	})
}
