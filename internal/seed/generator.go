package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/okian/salespulse/internal/domain/model"
)

// Generation tuning constants.
const (
	maxDailyWalkIns   = 4
	maxDailyMeetings  = 3
	maxDailyFollowUps = 5
	bookingChance     = 0.15
	activityChance    = 0.6
	unverifiedChance  = 0.25
	builderChance     = 0.4
	walkInTargetMin   = 20
	walkInTargetSpan  = 25
	closureTargetMin  = 2
	closureTargetSpan = 4
)

// Payload mirrors the POST /v1/report request body.
type Payload struct {
	Viewer     ViewerPayload               `json:"viewer"`
	Users      []model.UserRecord          `json:"users"`
	Snapshots  []model.PerformanceSnapshot `json:"snapshots"`
	Activities []model.ActivityEvent       `json:"activities"`
	Targets    []model.TargetRecord        `json:"targets"`
	Groups     []model.GroupRecord         `json:"groups"`
	AsOf       string                      `json:"as_of,omitempty"`
}

// ViewerPayload identifies the requesting user.
type ViewerPayload struct {
	Email    string `json:"email"`
	JobTitle string `json:"job_title"`
}

// Generate fabricates a manager with cfg.Reps executives, daily snapshots
// and activity events over cfg.Days days, individual targets for half the
// team and one group target for the rest. The same seed always produces
// the same payload.
func Generate(cfg *Config, stats *Stats) *Payload {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic seed for reproducible payloads

	manager := model.UserRecord{
		Email:    "manager@demo.salespulse.io",
		JobTitle: "Sales Manager",
	}
	users := []model.UserRecord{manager}
	for i := 0; i < cfg.Reps; i++ {
		users = append(users, model.UserRecord{
			Email:     fmt.Sprintf("rep-%02d@demo.salespulse.io", i+1),
			ReportsTo: manager.Email,
			JobTitle:  "Sales Executive",
		})
	}

	end := time.Now().UTC()
	if cfg.AsOf != "" {
		if day, ok := model.ParseDay(cfg.AsOf); ok {
			end = day
		}
	}

	var snapshots []model.PerformanceSnapshot
	var activities []model.ActivityEvent
	for d := cfg.Days - 1; d >= 0; d-- {
		day := end.AddDate(0, 0, -d).Format(model.DayLayout)
		for _, u := range users[1:] {
			snapshots = append(snapshots, model.PerformanceSnapshot{
				UserEmail:      u.Email,
				Date:           day,
				WalkinsCount:   rng.Intn(maxDailyWalkIns),
				MeetingsCount:  rng.Intn(maxDailyMeetings),
				FollowupsCount: rng.Intn(maxDailyFollowUps),
				BookingsCount:  booking(rng),
			})
			if rng.Float64() < activityChance {
				activities = append(activities, randomActivity(rng, u.Email, day))
			}
		}
	}

	targets, groups := randomTargets(rng, users[1:])

	stats.Users = len(users)
	stats.Snapshots = len(snapshots)
	stats.Activities = len(activities)
	stats.Targets = len(targets)

	return &Payload{
		Viewer:     ViewerPayload{Email: manager.Email, JobTitle: manager.JobTitle},
		Users:      users,
		Snapshots:  snapshots,
		Activities: activities,
		Targets:    targets,
		Groups:     groups,
		AsOf:       end.Format(model.DayLayout),
	}
}

func booking(rng *rand.Rand) int {
	if rng.Float64() < bookingChance {
		return 1
	}
	return 0
}

// randomActivity produces mostly verified events with a sprinkling of
// pending and rejected verifications so the trust gate has something to
// filter.
func randomActivity(rng *rand.Rand, email, day string) model.ActivityEvent {
	ev := model.ActivityEvent{
		UserEmail:      email,
		Date:           day,
		Type:           model.ActivityWalkIn,
		ROVerification: model.VerificationVerified,
	}
	if rng.Float64() < bookingChance {
		ev.Type = model.ActivityClosure
		ev.Status = model.StatusClosedWon
	}
	if rng.Float64() < unverifiedChance {
		ev.ROVerification = model.VerificationPending
	}
	if rng.Float64() < builderChance {
		ev.BuilderEmail = "builder-" + uuid.NewString()[:8] + "@demo.salespulse.io"
		ev.BuilderVerification = model.VerificationVerified
		if rng.Float64() < unverifiedChance {
			ev.BuilderVerification = model.VerificationNotVerified
		}
	}
	return ev
}

// randomTargets assigns individual targets to the first half of the team,
// including one project-scoped duplicate to exercise deduplication, and a
// single group target covering the second half.
func randomTargets(rng *rand.Rand, reps []model.UserRecord) ([]model.TargetRecord, []model.GroupRecord) {
	month := time.Now().UTC().Format("2006-01")
	half := len(reps) / 2

	var targets []model.TargetRecord
	for _, u := range reps[:half] {
		targets = append(targets, model.TargetRecord{
			UserEmail:          u.Email,
			WalkinTarget:       walkInTargetMin + rng.Intn(walkInTargetSpan),
			BookingCountTarget: closureTargetMin + rng.Intn(closureTargetSpan),
			Month:              month,
		})
	}
	if half > 0 {
		project := "proj-" + uuid.NewString()[:8]
		targets = append(targets, model.TargetRecord{
			UserEmail:          reps[0].Email,
			ProjectID:          &project,
			WalkinTarget:       walkInTargetMin,
			BookingCountTarget: closureTargetMin,
			Month:              month,
		})
	}

	var groups []model.GroupRecord
	if len(reps) > half {
		group := model.GroupRecord{ID: "grp-" + uuid.NewString()[:8]}
		for _, u := range reps[half:] {
			group.Members = append(group.Members, u.Email)
		}
		groups = append(groups, group)
		targets = append(targets, model.TargetRecord{
			GroupID:            group.ID,
			WalkinTarget:       walkInTargetMin + rng.Intn(walkInTargetSpan),
			BookingCountTarget: closureTargetMin + rng.Intn(closureTargetSpan),
			Month:              month,
		})
	}
	return targets, groups
}
