package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/salespulse/internal/adapters/cache"
	"github.com/okian/salespulse/internal/domain/model"
	"github.com/okian/salespulse/internal/domain/report"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKey(t *testing.T) {
	Convey("Given report inputs", t, func() {
		base := report.Input{
			Viewer: model.Viewer{Email: "a@x.io", Role: model.RoleExecutive},
			AsOf:   time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		}

		Convey("When deriving keys for identical inputs", func() {
			k1, err1 := cache.Key(base)
			k2, err2 := cache.Key(base)
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)

			Convey("Then the keys match", func() {
				So(k1, ShouldEqual, k2)
				So(k1, ShouldHaveLength, 64)
			})
		})

		Convey("When any part of the input differs", func() {
			k1, _ := cache.Key(base)

			withSnap := base
			withSnap.Snapshots = []model.PerformanceSnapshot{
				{UserEmail: "a@x.io", Date: "2026-08-28", WalkinsCount: 1},
			}
			k2, _ := cache.Key(withSnap)

			withOverride := base
			withOverride.TrackingDays = 14
			k3, _ := cache.Key(withOverride)

			Convey("Then the keys diverge", func() {
				So(k2, ShouldNotEqual, k1)
				So(k3, ShouldNotEqual, k1)
			})
		})
	})
}

func TestCache(t *testing.T) {
	Convey("Given a bounded cache", t, func() {
		ctx := context.Background()
		rep := &report.Report{AsOf: "2026-08-30"}

		Convey("When a report is stored", func() {
			c := cache.New()
			So(c.Put(ctx, "k1", rep), ShouldEqual, 0)

			Convey("Then Get returns the same report", func() {
				got, ok := c.Get(ctx, "k1")
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, rep)
			})

			Convey("Then an unknown key misses", func() {
				_, ok := c.Get(ctx, "nope")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the cache is full", func() {
			c := cache.New(cache.WithMaxEntries(2))
			So(c.Put(ctx, "k1", rep), ShouldEqual, 0)
			So(c.Put(ctx, "k2", rep), ShouldEqual, 0)

			Convey("Then the oldest entry is evicted first", func() {
				So(c.Put(ctx, "k3", rep), ShouldEqual, 1)
				So(c.Len(), ShouldEqual, 2)
				_, ok := c.Get(ctx, "k1")
				So(ok, ShouldBeFalse)
				_, ok = c.Get(ctx, "k3")
				So(ok, ShouldBeTrue)
			})

			Convey("Then re-storing an existing key evicts nothing", func() {
				So(c.Put(ctx, "k2", rep), ShouldEqual, 0)
				So(c.Len(), ShouldEqual, 2)
			})
		})

		Convey("When entries outlive the TTL", func() {
			now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
			c := cache.New(
				cache.WithTTL(time.Minute),
				cache.WithClock(func() time.Time { return now }),
			)
			c.Put(ctx, "k1", rep)
			now = now.Add(2 * time.Minute)

			Convey("Then Get misses and drops the entry", func() {
				_, ok := c.Get(ctx, "k1")
				So(ok, ShouldBeFalse)
				So(c.Len(), ShouldEqual, 0)
			})
		})
	})
}
