// Package report combines reconciled records with resolved, scaled targets
// into the per-user and team-wide sales performance report.
package report

import (
	"time"

	"github.com/okian/salespulse/internal/domain/model"
)

// Day classification for the daily progress series.
type DayStatus string

// Daily progress statuses against the per-day walk-in minimum.
const (
	DayMet     DayStatus = "met"
	DayPartial DayStatus = "partial"
	DayMissed  DayStatus = "missed"
)

// Input bundles everything one aggregation pass reads. All collections are
// treated as immutable; the pass creates no persistent state. AsOf is the
// injected "now" so the computation stays deterministic.
type Input struct {
	Viewer     model.Viewer
	Users      []model.UserRecord
	Snapshots  []model.PerformanceSnapshot
	Activities []model.ActivityEvent
	Targets    []model.TargetRecord
	Groups     []model.GroupRecord
	AsOf       time.Time

	// Per-call overrides; zero keeps the engine's configured value.
	TrackingDays int
	DailyMinimum int
}

// DayProgress classifies one tracking-window day for one user.
type DayProgress struct {
	Day     string    `json:"day"`
	WalkIns int       `json:"walkIns"`
	Status  DayStatus `json:"status"`
}

// UserTargets carries the applicable targets echoed into the report.
type UserTargets struct {
	WalkInTarget  int `json:"walkInTarget"`
	ClosureTarget int `json:"closureTarget"`
}

// UserRow is the per-user slice of the report. Effort metrics (walk-ins,
// meetings, follow-ups) cover the tracking window; closures are always
// month-to-date.
type UserRow struct {
	Email             string        `json:"email"`
	WalkInsCount      int           `json:"walkInsCount"`
	MeetingsCount     int           `json:"meetingsCount"`
	FollowupsCount    int           `json:"followupsCount"`
	ClosuresCount     int           `json:"closuresCount"`
	DailyProgress     []DayProgress `json:"dailyProgress"`
	WalkInCompliance  int           `json:"walkInCompliance"`
	ClosureCompliance int           `json:"closureCompliance"`
	Targets           UserTargets   `json:"targets"`
}

// ChartPoint is one day of team-wide aggregate counts across the tracking
// window.
type ChartPoint struct {
	Day       string `json:"day"`
	WalkIns   int    `json:"walkIns"`
	Meetings  int    `json:"meetings"`
	FollowUps int    `json:"followups"`
	Closures  int    `json:"closures"`
}

// TeamSummary carries the team-wide totals. Totals are sums of counts, not
// averages of percentages.
type TeamSummary struct {
	MTDBookings       int `json:"mtdBookings"`
	TeamBookingTarget int `json:"teamBookingTarget"`
	TeamWalkInTarget  int `json:"teamWalkInTarget"`
	MTDPerformancePct int `json:"mtdPerformancePct"`
	ForecastBookings  int `json:"forecastBookings"`
	ForecastWalkIns   int `json:"forecastWalkIns"`
	TodayWalkIns      int `json:"todayWalkIns"`
	TodayMeetings     int `json:"todayMeetings"`
	TodayFollowups    int `json:"todayFollowups"`
	TodayClosures     int `json:"todayClosures"`
}

// WindowInfo echoes the tracking window the report was computed over.
type WindowInfo struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// QualityStats surfaces how many supplied records actually reached the
// aggregation, measured over the union of the tracking and month-to-date
// windows. Dropped records are a data-quality signal, not an error.
type QualityStats struct {
	SnapshotsConsidered  int `json:"snapshotsConsidered"`
	SnapshotsUsed        int `json:"snapshotsUsed"`
	ActivitiesConsidered int `json:"activitiesConsidered"`
	ActivitiesUsed       int `json:"activitiesUsed"`
}

// Report is the full output of one aggregation pass.
type Report struct {
	AsOf      string       `json:"asOf"`
	Window    WindowInfo   `json:"window"`
	Users     []UserRow    `json:"users"`
	Team      TeamSummary  `json:"team"`
	ChartData []ChartPoint `json:"chartData"`
	Quality   QualityStats `json:"quality"`
}
