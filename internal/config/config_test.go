package config_test

import (
	"testing"
	"time"

	"github.com/okian/salespulse/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
			convey.So(cfg.TrackingWindowDays, convey.ShouldEqual, 7)
			convey.So(cfg.DailyWalkInMinimum, convey.ShouldEqual, 1)
			convey.So(cfg.DefaultWalkInTarget, convey.ShouldEqual, 30)
			convey.So(cfg.DefaultClosureTarget, convey.ShouldEqual, 3)
			convey.So(cfg.ScaleThresholdDays, convey.ShouldEqual, 20)
			convey.So(cfg.CacheSize, convey.ShouldEqual, 256)
			convey.So(cfg.CacheTTL, convey.ShouldEqual, 5*time.Minute)
			convey.So(cfg.MaxRequestBytes, convey.ShouldEqual, 8<<20)
		})
	})
}
