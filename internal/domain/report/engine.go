package report

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/salespulse/internal/domain/forecast"
	"github.com/okian/salespulse/internal/domain/model"
	"github.com/okian/salespulse/internal/domain/reconcile"
	"github.com/okian/salespulse/internal/domain/target"
	"github.com/okian/salespulse/internal/domain/visibility"
)

// Default engine configuration constants.
const (
	defaultTrackingWindowDays = 7
	defaultDailyWalkInMinimum = 1
	percent                   = 100
)

// Engine is the aggregation orchestrator. It is stateless between calls;
// concurrent Build invocations over independent inputs do not interfere.
type Engine struct {
	trackingDays   int
	dailyMinimum   int
	defaults       target.Defaults
	scaleThreshold int
}

// NewEngine creates an Engine with default configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		trackingDays:   defaultTrackingWindowDays,
		dailyMinimum:   defaultDailyWalkInMinimum,
		defaults:       target.StandardDefaults(),
		scaleThreshold: target.DefaultScaleThresholdDays,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// dayCounts are the per-day aggregates behind the progress and chart series.
type dayCounts struct {
	walkIns   int
	meetings  int
	followUps int
	closures  int
}

// tallies accumulates per-user counts keyed by normalized email.
type tallies struct {
	walkIns   map[string]int
	meetings  map[string]int
	followUps map[string]int
	closures  map[string]int
	// per user, per day counts for the daily progress and chart series
	daily map[string]map[string]*dayCounts
}

func newTallies() *tallies {
	return &tallies{
		walkIns:   make(map[string]int),
		meetings:  make(map[string]int),
		followUps: make(map[string]int),
		closures:  make(map[string]int),
		daily:     make(map[string]map[string]*dayCounts),
	}
}

func (t *tallies) day(email, day string) *dayCounts {
	days := t.daily[email]
	if days == nil {
		days = make(map[string]*dayCounts)
		t.daily[email] = days
	}
	dc := days[day]
	if dc == nil {
		dc = &dayCounts{}
		days[day] = dc
	}
	return dc
}

func (t *tallies) dayWalkIns(email, day string) int {
	if dc := t.daily[email][day]; dc != nil {
		return dc.walkIns
	}
	return 0
}

// Build runs one aggregation pass over the supplied immutable collections.
// Re-running it with identical inputs yields an identical report.
func (e *Engine) Build(ctx context.Context, in Input) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("report build cancelled: %w", err)
	}
	if in.AsOf.IsZero() {
		return nil, ErrAsOfRequired
	}
	asOf := model.Day(in.AsOf)

	trackingDays := e.trackingDays
	if in.TrackingDays > 0 {
		trackingDays = in.TrackingDays
	}
	dailyMinimum := e.dailyMinimum
	if in.DailyMinimum > 0 {
		dailyMinimum = in.DailyMinimum
	}

	visible := visibility.Resolve(in.Viewer, in.Users)
	set := visibility.NewSet(visible)

	// Effort metrics are measured over the tracking window; outcome metrics
	// month-to-date; today's counts over the current day. Each window is
	// reconciled independently.
	trackWin := reconcile.LastDays(asOf, trackingDays)
	mtdWin := reconcile.MonthToDate(asOf)
	todayWin := reconcile.SingleDay(asOf)

	track := tallyWindow(trackWin, set, in.Snapshots, in.Activities)
	mtd := tallyWindow(mtdWin, set, in.Snapshots, in.Activities)
	today := tallyWindow(todayWin, set, in.Snapshots, in.Activities)

	days := trackWin.Days()
	users := make([]UserRow, 0, len(visible))
	for _, email := range visible {
		resolved := target.Resolve(email, in.Targets, in.Groups, e.defaults)
		walkInTarget := target.ScaleWalkIns(resolved.MonthlyWalkIns, trackWin.Len(), e.scaleThreshold)

		row := UserRow{
			Email:          email,
			WalkInsCount:   track.walkIns[email],
			MeetingsCount:  track.meetings[email],
			FollowupsCount: track.followUps[email],
			ClosuresCount:  mtd.closures[email],
			Targets:        UserTargets{WalkInTarget: walkInTarget, ClosureTarget: resolved.MonthlyClosures},
		}
		row.WalkInCompliance = compliance(row.WalkInsCount, walkInTarget)
		row.ClosureCompliance = compliance(row.ClosuresCount, resolved.MonthlyClosures)
		row.DailyProgress = dailyProgress(email, days, track, dailyMinimum)
		users = append(users, row)
	}

	teamWalkInTarget, teamBookingTarget := target.TeamTargets(visible, in.Targets)
	teamWalkInTarget = target.ScaleWalkIns(teamWalkInTarget, trackWin.Len(), e.scaleThreshold)

	mtdBookings := 0
	mtdWalkIns := 0
	for _, email := range visible {
		mtdBookings += mtd.closures[email]
		mtdWalkIns += mtd.walkIns[email]
	}

	mtdPct := 0
	if teamBookingTarget > 0 {
		mtdPct = int(math.Round(float64(mtdBookings) / float64(teamBookingTarget) * percent))
	}

	dayOfMonth := asOf.Day()
	daysInMonth := asOf.AddDate(0, 1, -dayOfMonth).Day()

	team := TeamSummary{
		MTDBookings:       mtdBookings,
		TeamBookingTarget: teamBookingTarget,
		TeamWalkInTarget:  teamWalkInTarget,
		MTDPerformancePct: mtdPct,
		ForecastBookings:  forecast.MonthEnd(mtdBookings, dayOfMonth, daysInMonth),
		ForecastWalkIns:   forecast.MonthEnd(mtdWalkIns, dayOfMonth, daysInMonth),
		TodayWalkIns:      sum(today.walkIns),
		TodayMeetings:     sum(today.meetings),
		TodayFollowups:    sum(today.followUps),
		TodayClosures:     sum(today.closures),
	}

	// Everything this report could have read falls inside the union of the
	// tracking and month-to-date windows.
	scope := reconcile.Window{Start: trackWin.Start, End: asOf}
	if mtdWin.Start.Before(scope.Start) {
		scope.Start = mtdWin.Start
	}
	quality := QualityStats{
		SnapshotsConsidered:  len(in.Snapshots),
		SnapshotsUsed:        len(reconcile.Snapshots(scope, set, in.Snapshots)),
		ActivitiesConsidered: len(in.Activities),
		ActivitiesUsed:       len(reconcile.Events(scope, set, in.Activities)),
	}

	return &Report{
		AsOf: asOf.Format(model.DayLayout),
		Window: WindowInfo{
			Start: trackWin.Start.Format(model.DayLayout),
			End:   trackWin.End.Format(model.DayLayout),
			Days:  trackWin.Len(),
		},
		Users:     users,
		Team:      team,
		ChartData: chartSeries(days, track),
		Quality:   quality,
	}, nil
}

// tallyWindow reconciles both sources over one window and accumulates
// per-user counts. Walk-ins combine snapshot counts with walk_in events;
// meetings and follow-ups come from snapshots only; closures combine
// snapshot bookings with closure (or closed_won) events.
func tallyWindow(w reconcile.Window, visible visibility.Set, snaps []model.PerformanceSnapshot, acts []model.ActivityEvent) *tallies {
	t := newTallies()
	for _, s := range reconcile.Snapshots(w, visible, snaps) {
		t.walkIns[s.Email] += s.WalkIns
		t.meetings[s.Email] += s.Meetings
		t.followUps[s.Email] += s.FollowUps
		t.closures[s.Email] += s.Bookings
		dc := t.day(s.Email, s.Day)
		dc.walkIns += s.WalkIns
		dc.meetings += s.Meetings
		dc.followUps += s.FollowUps
		dc.closures += s.Bookings
	}
	for _, ev := range reconcile.Events(w, visible, acts) {
		if ev.Type == model.ActivityWalkIn {
			t.walkIns[ev.Email]++
			t.day(ev.Email, ev.Day).walkIns++
		}
		if ev.Closure {
			t.closures[ev.Email]++
			t.day(ev.Email, ev.Day).closures++
		}
	}
	return t
}

// dailyProgress classifies every tracking-window day for one user.
func dailyProgress(email string, days []string, t *tallies, minimum int) []DayProgress {
	progress := make([]DayProgress, 0, len(days))
	for _, day := range days {
		count := t.dayWalkIns(email, day)
		progress = append(progress, DayProgress{Day: day, WalkIns: count, Status: dayStatus(count, minimum)})
	}
	return progress
}

func dayStatus(count, minimum int) DayStatus {
	switch {
	case count == 0:
		return DayMissed
	case count >= minimum:
		return DayMet
	default:
		return DayPartial
	}
}

// chartSeries aggregates per-day counts across all visible users.
func chartSeries(days []string, t *tallies) []ChartPoint {
	perDay := make(map[string]*ChartPoint, len(days))
	points := make([]ChartPoint, len(days))
	for i, day := range days {
		points[i] = ChartPoint{Day: day}
		perDay[day] = &points[i]
	}
	for _, userDays := range t.daily {
		for day, dc := range userDays {
			p, ok := perDay[day]
			if !ok {
				continue
			}
			p.WalkIns += dc.walkIns
			p.Meetings += dc.meetings
			p.FollowUps += dc.followUps
			p.Closures += dc.closures
		}
	}
	return points
}

// compliance is actual/target as a rounded percentage. A zero or missing
// target short-circuits to the bonus rule: logged effort reads as 100%,
// none as 0%, never as an unmeetable ratio.
func compliance(count, targetValue int) int {
	if targetValue > 0 {
		return int(math.Round(float64(count) / float64(targetValue) * percent))
	}
	if count > 0 {
		return percent
	}
	return 0
}

func sum(m map[string]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}
