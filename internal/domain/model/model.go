// Package model contains the domain records passed between layers.
// Fields mirror the JSON shapes supplied by callers of POST /v1/report.
package model

import (
	"strings"
	"time"
)

// DayLayout is the canonical calendar-day key used for same-day grouping.
const DayLayout = "2006-01-02"

// ParseDay parses a record date in either day (2006-01-02) or RFC3339 form
// and normalizes it to midnight UTC. The second return is false when the
// value is unparsable; such records are dropped, never fatal.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DayLayout, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(t), true
	}
	return time.Time{}, false
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeEmail lower-cases and trims an email for case-insensitive matching.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PerformanceSnapshot is one externally produced row per user per calendar
// day. Immutable once read by the engine.
type PerformanceSnapshot struct {
	UserEmail      string `json:"user_email"`
	Date           string `json:"date"`
	WalkinsCount   int    `json:"walkins_count"`
	MeetingsCount  int    `json:"meetings_count"`
	FollowupsCount int    `json:"followups_count"`
	BookingsCount  int    `json:"bookings_count"`
}

// ActivityType classifies a logged sales event.
type ActivityType string

// Activity types counted by the engine.
const (
	ActivityWalkIn  ActivityType = "walk_in"
	ActivityClosure ActivityType = "closure"
)

// StatusClosedWon marks an activity that closed regardless of its type.
const StatusClosedWon = "closed_won"

// Verification is the approval state attached to an activity event.
type Verification string

// Verification states.
const (
	VerificationPending     Verification = "pending"
	VerificationVerified    Verification = "verified"
	VerificationNotVerified Verification = "not_verified"
)

// ActivityEvent is one individually logged sales event.
type ActivityEvent struct {
	UserEmail           string       `json:"user_email"`
	Date                string       `json:"date"`
	Type                ActivityType `json:"type"`
	Status              string       `json:"status"`
	BuilderEmail        string       `json:"builder_email,omitempty"`
	BuilderVerification Verification `json:"builder_verification_status,omitempty"`
	ROVerification      Verification `json:"ro_verification_status"`
}

// Verified reports whether the event passes the dual-approval trust gate:
// the reporting officer must have verified it, and if a builder is attached
// the builder must have verified it too. An event with any unresolved or
// rejected verification contributes zero to every total.
func (e ActivityEvent) Verified() bool {
	if e.ROVerification != VerificationVerified {
		return false
	}
	return e.BuilderEmail == "" || e.BuilderVerification == VerificationVerified
}

// IsClosure reports whether the event counts as a booking outcome.
func (e ActivityEvent) IsClosure() bool {
	return e.Type == ActivityClosure || e.Status == StatusClosedWon
}

// TargetRecord carries monthly numeric targets scoped to a user, a group,
// and optionally a project. A nil ProjectID means "all projects".
type TargetRecord struct {
	UserEmail          string  `json:"user_email,omitempty"`
	GroupID            string  `json:"group_id,omitempty"`
	ProjectID          *string `json:"project_id"`
	WalkinTarget       int     `json:"walkin_target"`
	BookingCountTarget int     `json:"booking_count_target"`
	Month              string  `json:"month"`
}

// Individual reports whether the record is assigned directly to a user.
func (t TargetRecord) Individual() bool {
	return t.GroupID == "" && t.UserEmail != ""
}

// GroupRecord names a set of users sharing a group-scoped target.
type GroupRecord struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
}

// Contains reports whether email is a member, case-insensitively.
func (g GroupRecord) Contains(email string) bool {
	email = NormalizeEmail(email)
	for _, m := range g.Members {
		if NormalizeEmail(m) == email {
			return true
		}
	}
	return false
}

// UserRecord is one trackable user.
type UserRecord struct {
	Email     string `json:"email"`
	ReportsTo string `json:"reports_to,omitempty"`
	JobTitle  string `json:"job_title"`
}

// Role is the closed set of viewer authorizations, resolved once at the
// boundary instead of re-deriving job-title strings downstream.
type Role uint8

// Viewer roles, broadest last.
const (
	RoleExecutive Role = iota
	RoleManager
	RoleAdmin
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleExecutive:
		return "executive"
	case RoleManager:
		return "manager"
	default:
		return "admin"
	}
}

// RoleFromTitle classifies a job title into a Role. "Sales Executive" sees
// only themselves; anything carrying "manager" sees their reports; every
// other title is treated as an admin/head role.
func RoleFromTitle(title string) Role {
	t := strings.ToLower(strings.TrimSpace(title))
	switch {
	case t == "sales executive":
		return RoleExecutive
	case strings.Contains(t, "manager"):
		return RoleManager
	default:
		return RoleAdmin
	}
}

// Viewer identifies who is asking for the report.
type Viewer struct {
	Email string
	Role  Role
}
