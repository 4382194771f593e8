// Package reconcile filters and normalizes raw performance snapshots and
// activity events into verified, day-keyed collections for one window.
package reconcile

import (
	"time"

	"github.com/okian/salespulse/internal/domain/model"
	"github.com/okian/salespulse/internal/domain/visibility"
)

// Window is an inclusive calendar-day range.
type Window struct {
	Start time.Time
	End   time.Time
}

// LastDays returns the rolling tracking window of the given length ending
// on the asOf day. A length below 1 collapses to the single asOf day.
func LastDays(asOf time.Time, days int) Window {
	end := model.Day(asOf)
	if days < 1 {
		days = 1
	}
	return Window{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

// MonthToDate returns the window from the first of the asOf month through
// the asOf day.
func MonthToDate(asOf time.Time) Window {
	end := model.Day(asOf)
	return Window{Start: time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC), End: end}
}

// SingleDay returns the one-day window for asOf.
func SingleDay(asOf time.Time) Window {
	d := model.Day(asOf)
	return Window{Start: d, End: d}
}

// Contains reports whether the day t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days lists every calendar-day key in the window, oldest first.
func (w Window) Days() []string {
	var days []string
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(model.DayLayout))
	}
	return days
}

// Len returns the number of calendar days spanned by the window.
func (w Window) Len() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Snapshot is a normalized performance snapshot surviving reconciliation.
type Snapshot struct {
	Email     string
	Day       string
	WalkIns   int
	Meetings  int
	FollowUps int
	Bookings  int
}

// Event is a normalized, verification-passed activity event.
type Event struct {
	Email   string
	Day     string
	Type    model.ActivityType
	Closure bool
}

// Snapshots filters raw snapshots down to the window and visible set,
// attaching the day key and coercing malformed numerics to zero. Records
// with unparsable dates are silently dropped as a data-quality signal.
func Snapshots(w Window, visible visibility.Set, raw []model.PerformanceSnapshot) []Snapshot {
	out := make([]Snapshot, 0, len(raw))
	for _, s := range raw {
		day, ok := model.ParseDay(s.Date)
		if !ok || !w.Contains(day) {
			continue
		}
		if !visible.Contains(s.UserEmail) {
			continue
		}
		out = append(out, Snapshot{
			Email:     model.NormalizeEmail(s.UserEmail),
			Day:       day.Format(model.DayLayout),
			WalkIns:   clamp(s.WalkinsCount),
			Meetings:  clamp(s.MeetingsCount),
			FollowUps: clamp(s.FollowupsCount),
			Bookings:  clamp(s.BookingsCount),
		})
	}
	return out
}

// Events filters raw activity events down to the window and visible set,
// additionally enforcing the dual-verification trust gate.
func Events(w Window, visible visibility.Set, raw []model.ActivityEvent) []Event {
	out := make([]Event, 0, len(raw))
	for _, e := range raw {
		day, ok := model.ParseDay(e.Date)
		if !ok || !w.Contains(day) {
			continue
		}
		if !visible.Contains(e.UserEmail) {
			continue
		}
		if !e.Verified() {
			continue
		}
		out = append(out, Event{
			Email:   model.NormalizeEmail(e.UserEmail),
			Day:     day.Format(model.DayLayout),
			Type:    e.Type,
			Closure: e.IsClosure(),
		})
	}
	return out
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
