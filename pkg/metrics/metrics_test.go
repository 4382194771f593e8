package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with an isolated registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then all metrics register without conflict", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithPrometheusRegistry(registry),
				WithNamespace("custom"),
				WithSubsystem("pipeline"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithMetricsEnabled(true),
			)

			Convey("Then the namespace prefixes every metric", func() {
				So(manager, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				for _, f := range families {
					So(f.GetName(), ShouldStartWith, "custom_pipeline_")
				}
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		So(GetRegistry(), ShouldNotBeNil)

		Convey("When recording report metrics", func() {
			So(func() {
				RecordReportBuilt(12.5)
				RecordReportError()
				UpdateVisibleUsers(4)
				RecordReconciled("snapshot", 8, 2)
				RecordReconciled("activity", 3, 1)
			}, ShouldNotPanic)
		})

		Convey("When recording cache metrics", func() {
			So(func() {
				RecordCacheHit()
				RecordCacheMiss()
				RecordCacheEviction()
				UpdateCacheEntries(7)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("report", "POST", "200")
				RecordHTTPRequestDuration("report", "POST", "200", 3.2)
			}, ShouldNotPanic)
		})

		Convey("Then recorded series are gatherable", func() {
			RecordReportBuilt(1)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["salespulse_report_reports_built_total"], ShouldBeTrue)
			So(names["salespulse_report_cache_hits_total"], ShouldBeTrue)
			So(names["salespulse_report_http_requests_total"], ShouldBeTrue)
		})
	})
}

func TestDisabledManager(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(
			WithPrometheusRegistry(registry),
			WithMetricsEnabled(false),
		)

		Convey("Then it is still constructed with all metrics", func() {
			So(manager, ShouldNotBeNil)
			So(manager.enabled, ShouldBeFalse)
		})
	})
}
