package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/salespulse/internal/domain/model"
	"github.com/okian/salespulse/internal/domain/report"
	. "github.com/smartystreets/goconvey/convey"
)

// teamInput builds a manager with two reports plus one user outside the
// team, with activity spread over the tracking window and earlier in the
// month.
func teamInput() report.Input {
	return report.Input{
		Viewer: model.Viewer{Email: "boss@x.io", Role: model.RoleManager},
		Users: []model.UserRecord{
			{Email: "boss@x.io", JobTitle: "Sales Manager"},
			{Email: "a@x.io", ReportsTo: "boss@x.io", JobTitle: "Sales Executive"},
			{Email: "b@x.io", ReportsTo: "boss@x.io", JobTitle: "Sales Executive"},
			{Email: "c@x.io", ReportsTo: "other@x.io", JobTitle: "Sales Executive"},
		},
		Snapshots: []model.PerformanceSnapshot{
			{UserEmail: "a@x.io", Date: "2026-08-28", WalkinsCount: 2, MeetingsCount: 1, FollowupsCount: 3, BookingsCount: 1},
			{UserEmail: "a@x.io", Date: "2026-08-05", WalkinsCount: 5, BookingsCount: 2},
			{UserEmail: "b@x.io", Date: "2026-08-30", WalkinsCount: 1},
			{UserEmail: "c@x.io", Date: "2026-08-28", WalkinsCount: 9, BookingsCount: 9},
		},
		Activities: []model.ActivityEvent{
			{UserEmail: "a@x.io", Date: "2026-08-30", Type: model.ActivityWalkIn, ROVerification: model.VerificationVerified},
			{UserEmail: "a@x.io", Date: "2026-08-29", Type: model.ActivityClosure, ROVerification: model.VerificationVerified},
			{UserEmail: "a@x.io", Date: "2026-08-28", Type: model.ActivityWalkIn, ROVerification: model.VerificationPending},
			{UserEmail: "b@x.io", Date: "2026-08-28", Type: model.ActivityWalkIn, ROVerification: model.VerificationVerified,
				BuilderEmail: "bld@x.io", BuilderVerification: model.VerificationVerified},
		},
		Targets: []model.TargetRecord{
			{UserEmail: "a@x.io", WalkinTarget: 40, BookingCountTarget: 4, Month: "2026-08"},
		},
		AsOf: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildTeamReport(t *testing.T) {
	Convey("Given a manager's team over a 7-day window", t, func() {
		engine := report.NewEngine(report.WithTrackingWindowDays(7))
		rep, err := engine.Build(context.Background(), teamInput())
		So(err, ShouldBeNil)

		Convey("Then the visible users are the manager and their reports", func() {
			So(rep.Users, ShouldHaveLength, 3)
			So(rep.Users[0].Email, ShouldEqual, "boss@x.io")
			So(rep.Users[1].Email, ShouldEqual, "a@x.io")
			So(rep.Users[2].Email, ShouldEqual, "b@x.io")
		})

		Convey("Then effort metrics cover the tracking window only", func() {
			a := rep.Users[1]
			// snapshot on the 28th plus one verified walk_in event
			So(a.WalkInsCount, ShouldEqual, 3)
			So(a.MeetingsCount, ShouldEqual, 1)
			So(a.FollowupsCount, ShouldEqual, 3)
		})

		Convey("Then closures are month-to-date", func() {
			a := rep.Users[1]
			// bookings 1+2 from snapshots plus one closure event
			So(a.ClosuresCount, ShouldEqual, 4)
		})

		Convey("Then targets scale to the short window", func() {
			a := rep.Users[1]
			// ceil(40*7/30) = 10
			So(a.Targets.WalkInTarget, ShouldEqual, 10)
			So(a.Targets.ClosureTarget, ShouldEqual, 4)
			So(a.WalkInCompliance, ShouldEqual, 30)
			So(a.ClosureCompliance, ShouldEqual, 100)

			b := rep.Users[2]
			// default 30 scaled: ceil(30*7/30) = 7
			So(b.Targets.WalkInTarget, ShouldEqual, 7)
			So(b.WalkInsCount, ShouldEqual, 2)
			So(b.WalkInCompliance, ShouldEqual, 29)
		})

		Convey("Then the team summary sums counts, not percentages", func() {
			So(rep.Team.MTDBookings, ShouldEqual, 4)
			// only a@x.io has a configured target
			So(rep.Team.TeamBookingTarget, ShouldEqual, 4)
			So(rep.Team.TeamWalkInTarget, ShouldEqual, 10)
			So(rep.Team.MTDPerformancePct, ShouldEqual, 100)
		})

		Convey("Then forecasts project linearly from day 30 of 31", func() {
			// round(4/30*31) = 4
			So(rep.Team.ForecastBookings, ShouldEqual, 4)
			// MTD walk-ins: a 2+5+1, b 1+1 = 10; round(10/30*31) = 10
			So(rep.Team.ForecastWalkIns, ShouldEqual, 10)
		})

		Convey("Then today's counts cover only the as-of day", func() {
			So(rep.Team.TodayWalkIns, ShouldEqual, 2)
			So(rep.Team.TodayMeetings, ShouldEqual, 0)
			So(rep.Team.TodayFollowups, ShouldEqual, 0)
			So(rep.Team.TodayClosures, ShouldEqual, 0)
		})

		Convey("Then daily progress classifies each window day", func() {
			a := rep.Users[1]
			So(a.DailyProgress, ShouldHaveLength, 7)
			byDay := map[string]report.DayStatus{}
			for _, p := range a.DailyProgress {
				byDay[p.Day] = p.Status
			}
			So(byDay["2026-08-28"], ShouldEqual, report.DayMet)
			So(byDay["2026-08-30"], ShouldEqual, report.DayMet)
			So(byDay["2026-08-27"], ShouldEqual, report.DayMissed)
		})

		Convey("Then chart data aggregates per day across the team", func() {
			So(rep.ChartData, ShouldHaveLength, 7)
			last := rep.ChartData[6]
			So(last.Day, ShouldEqual, "2026-08-30")
			So(last.WalkIns, ShouldEqual, 2)
			day28 := rep.ChartData[4]
			So(day28.Day, ShouldEqual, "2026-08-28")
			So(day28.WalkIns, ShouldEqual, 3)
			So(day28.Meetings, ShouldEqual, 1)
			So(day28.Closures, ShouldEqual, 1)
		})

		Convey("Then dropped records surface as data-quality counts", func() {
			So(rep.Quality.SnapshotsConsidered, ShouldEqual, 4)
			So(rep.Quality.SnapshotsUsed, ShouldEqual, 3)
			So(rep.Quality.ActivitiesConsidered, ShouldEqual, 4)
			So(rep.Quality.ActivitiesUsed, ShouldEqual, 3)
		})
	})
}

func TestBuildProperties(t *testing.T) {
	Convey("Given the aggregation engine", t, func() {
		engine := report.NewEngine(report.WithTrackingWindowDays(7))

		Convey("When building twice with identical inputs", func() {
			first, err1 := engine.Build(context.Background(), teamInput())
			second, err2 := engine.Build(context.Background(), teamInput())
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)

			Convey("Then the output is identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When an event lacks RO verification", func() {
			in := teamInput()
			in.Activities = []model.ActivityEvent{
				{UserEmail: "a@x.io", Date: "2026-08-30", Type: model.ActivityWalkIn,
					BuilderVerification: model.VerificationVerified, ROVerification: model.VerificationNotVerified},
			}
			in.Snapshots = nil
			rep, err := engine.Build(context.Background(), in)
			So(err, ShouldBeNil)

			Convey("Then it contributes to no count at all", func() {
				for _, u := range rep.Users {
					So(u.WalkInsCount, ShouldEqual, 0)
					So(u.ClosuresCount, ShouldEqual, 0)
				}
				So(rep.Team.TodayWalkIns, ShouldEqual, 0)
			})
		})

		Convey("When records belong to users outside the visible set", func() {
			rep, err := engine.Build(context.Background(), teamInput())
			So(err, ShouldBeNil)

			Convey("Then they appear nowhere in the report", func() {
				for _, u := range rep.Users {
					So(u.Email, ShouldNotEqual, "c@x.io")
				}
				// c@x.io's 9 bookings never leak into the team totals
				So(rep.Team.MTDBookings, ShouldEqual, 4)
			})
		})

		Convey("When the as-of date is missing", func() {
			in := teamInput()
			in.AsOf = time.Time{}
			_, err := engine.Build(context.Background(), in)
			So(err, ShouldEqual, report.ErrAsOfRequired)
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := engine.Build(ctx, teamInput())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestComplianceRules(t *testing.T) {
	Convey("Given target edge cases", t, func() {
		Convey("When a user has no target and a window of at least 20 days", func() {
			engine := report.NewEngine(report.WithTrackingWindowDays(20))
			in := report.Input{
				Viewer: model.Viewer{Email: "a@x.io", Role: model.RoleExecutive},
				Users:  []model.UserRecord{{Email: "a@x.io", JobTitle: "Sales Executive"}},
				Snapshots: []model.PerformanceSnapshot{
					{UserEmail: "a@x.io", Date: "2026-08-28", WalkinsCount: 2},
				},
				AsOf: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			}
			rep, err := engine.Build(context.Background(), in)
			So(err, ShouldBeNil)

			Convey("Then the unscaled default of 30 applies", func() {
				a := rep.Users[0]
				So(a.Targets.WalkInTarget, ShouldEqual, 30)
				So(a.WalkInsCount, ShouldEqual, 2)
				// round(2/30*100) = 7
				So(a.WalkInCompliance, ShouldEqual, 7)
			})
		})

		Convey("When a user has an explicit zero target", func() {
			engine := report.NewEngine(report.WithTrackingWindowDays(7))
			in := report.Input{
				Viewer: model.Viewer{Email: "a@x.io", Role: model.RoleExecutive},
				Users:  []model.UserRecord{{Email: "a@x.io", JobTitle: "Sales Executive"}},
				Targets: []model.TargetRecord{
					{UserEmail: "a@x.io", WalkinTarget: 0, BookingCountTarget: 0, Month: "2026-08"},
				},
				Snapshots: []model.PerformanceSnapshot{
					{UserEmail: "a@x.io", Date: "2026-08-28", WalkinsCount: 1},
				},
				AsOf: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			}
			rep, err := engine.Build(context.Background(), in)
			So(err, ShouldBeNil)

			Convey("Then logged effort reads as 100%, none as 0%", func() {
				a := rep.Users[0]
				So(a.WalkInCompliance, ShouldEqual, 100)
				So(a.ClosureCompliance, ShouldEqual, 0)
			})
		})

		Convey("When per-request overrides are supplied", func() {
			engine := report.NewEngine()
			in := report.Input{
				Viewer:       model.Viewer{Email: "a@x.io", Role: model.RoleExecutive},
				Users:        []model.UserRecord{{Email: "a@x.io", JobTitle: "Sales Executive"}},
				AsOf:         time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
				TrackingDays: 3,
			}
			rep, err := engine.Build(context.Background(), in)
			So(err, ShouldBeNil)
			So(rep.Window.Days, ShouldEqual, 3)
			So(rep.Window.Start, ShouldEqual, "2026-08-28")
		})
	})
}
