// Package target selects the one numeric target applicable to each user
// from possibly-overlapping individual and group target records, and scales
// monthly walk-in targets to shorter tracking windows.
package target

import (
	"math"

	"github.com/okian/salespulse/internal/domain/model"
)

// Bonus-target convention applied to users with no configured target.
// Defaults keep an unconfigured user from being flagged for 0% compliance
// against an unset goal.
const (
	DefaultMonthlyWalkIns  = 30
	DefaultMonthlyClosures = 3
)

// Monthly targets are scaled to tracking windows shorter than the scale
// threshold, pro-rated against a 30-day month.
const (
	DefaultScaleThresholdDays = 20
	daysPerMonth              = 30
)

// Defaults carries the fallback monthly targets for unconfigured users.
type Defaults struct {
	MonthlyWalkIns  int
	MonthlyClosures int
}

// StandardDefaults returns the 30/3 bonus-target convention.
func StandardDefaults() Defaults {
	return Defaults{MonthlyWalkIns: DefaultMonthlyWalkIns, MonthlyClosures: DefaultMonthlyClosures}
}

// Resolved is the outcome of the per-user deduplication waterfall.
type Resolved struct {
	MonthlyWalkIns  int
	MonthlyClosures int
	// Explicit is false when the defaults were applied.
	Explicit bool
}

// Resolve walks the deduplication waterfall for one user:
//
//  1. individual records (no group) with a nil project id win outright;
//  2. otherwise the individual record with the lowest project id wins,
//     keeping the tie-break deterministic instead of input-ordered;
//  3. otherwise the first record keyed by a group containing the user;
//  4. otherwise the defaults apply.
func Resolve(email string, targets []model.TargetRecord, groups []model.GroupRecord, defaults Defaults) Resolved {
	email = model.NormalizeEmail(email)

	var best *model.TargetRecord
	for i := range targets {
		t := &targets[i]
		if !t.Individual() || model.NormalizeEmail(t.UserEmail) != email {
			continue
		}
		if t.ProjectID == nil {
			best = t
			break
		}
		if best == nil || (best.ProjectID != nil && *t.ProjectID < *best.ProjectID) {
			best = t
		}
	}
	if best != nil {
		return Resolved{MonthlyWalkIns: best.WalkinTarget, MonthlyClosures: best.BookingCountTarget, Explicit: true}
	}

	memberOf := make(map[string]struct{})
	for _, g := range groups {
		if g.Contains(email) {
			memberOf[g.ID] = struct{}{}
		}
	}
	if len(memberOf) > 0 {
		for _, t := range targets {
			if t.GroupID == "" {
				continue
			}
			if _, ok := memberOf[t.GroupID]; ok {
				return Resolved{MonthlyWalkIns: t.WalkinTarget, MonthlyClosures: t.BookingCountTarget, Explicit: true}
			}
		}
	}

	return Resolved{MonthlyWalkIns: defaults.MonthlyWalkIns, MonthlyClosures: defaults.MonthlyClosures}
}

// TeamTargets sums the deduplicated individually-assigned targets across the
// visible users. Group records and defaults are deliberately excluded: the
// team total reflects configured commitments only, while per-user compliance
// stays meaningful for unconfigured users through Resolve's defaults.
func TeamTargets(visible []string, targets []model.TargetRecord) (walkIns, closures int) {
	for _, email := range visible {
		email = model.NormalizeEmail(email)

		var best *model.TargetRecord
		for i := range targets {
			t := &targets[i]
			if !t.Individual() || model.NormalizeEmail(t.UserEmail) != email {
				continue
			}
			if t.ProjectID == nil {
				best = t
				break
			}
			if best == nil || (best.ProjectID != nil && *t.ProjectID < *best.ProjectID) {
				best = t
			}
		}
		if best != nil {
			walkIns += best.WalkinTarget
			closures += best.BookingCountTarget
		}
	}
	return walkIns, closures
}

// ScaleWalkIns converts a monthly walk-in target to an equivalent value for
// a tracking window shorter than thresholdDays, rounding up. Windows at or
// beyond the threshold keep the monthly figure; closure targets are never
// scaled and are always evaluated month-to-date.
func ScaleWalkIns(monthly, trackingDays, thresholdDays int) int {
	if trackingDays >= thresholdDays || trackingDays < 1 || monthly <= 0 {
		return monthly
	}
	return int(math.Ceil(float64(monthly) * float64(trackingDays) / daysPerMonth))
}
