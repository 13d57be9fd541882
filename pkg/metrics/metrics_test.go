package metrics_test

import (
	"strings"
	"testing"

	"github.com/nlsvndrp/aperowo-nils/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithPrometheusRegistry(reg))
		So(m, ShouldNotBeNil)

		Convey("Then all collectors register under the default namespace", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)

			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			joined := strings.Join(names, " ")
			So(joined, ShouldContainSubstring, "aperowo_calendar_feed_loads_total")
			So(joined, ShouldContainSubstring, "aperowo_calendar_snapshot_rebuilds_total")
			So(joined, ShouldContainSubstring, "aperowo_calendar_events_loaded")
		})
	})

	Convey("Given namespace and subsystem overrides", t, func() {
		reg := prometheus.NewRegistry()
		metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("suite"),
			metrics.WithHistogramBuckets([]float64{1, 10, 100}),
		)

		Convey("Then metric names carry the overrides", func() {
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
			for _, f := range families {
				So(f.GetName(), ShouldStartWith, "test_suite_")
			}
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(metrics.GetRegistry(), ShouldNotBeNil)

		Convey("Recording helpers do not panic", func() {
			So(func() {
				metrics.RecordFeedLoad(12.5)
				metrics.RecordFeedLoadError()
				metrics.RecordRecordsSkipped(3)
				metrics.RecordRecordsSkipped(0)
				metrics.UpdateEventsLoaded(42)
				metrics.UpdateSourcesLoaded(1)
				metrics.RecordSnapshotRebuild(1.5)
				metrics.UpdateDaysIndexed(7)
				metrics.RecordHTTPRequest("month", "GET", "200")
				metrics.RecordHTTPRequestDuration("month", "GET", "200", 3.2)
				metrics.RecordErrorByEndpoint("day", "GET", "client_error")
				metrics.RecordErrorByType("client_error", "warning")
			}, ShouldNotPanic)
		})

		Convey("Recorded values show up in the registry", func() {
			metrics.UpdateEventsLoaded(17)
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)

			var found bool
			for _, f := range families {
				if f.GetName() == "aperowo_calendar_events_loaded" {
					found = true
					So(f.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 17)
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
