// Package visibility narrows the universe of trackable users to those a
// viewer is authorized to see.
package visibility

import (
	"github.com/okian/salespulse/internal/domain/model"
)

// Set is a lookup of visible, normalized emails.
type Set map[string]struct{}

// NewSet builds a Set from an ordered email list.
func NewSet(emails []string) Set {
	s := make(Set, len(emails))
	for _, e := range emails {
		s[model.NormalizeEmail(e)] = struct{}{}
	}
	return s
}

// Contains reports whether email is visible, case-insensitively.
func (s Set) Contains(email string) bool {
	_, ok := s[model.NormalizeEmail(email)]
	return ok
}

// Resolve returns the ordered, lower-cased list of emails the viewer may
// see. Executives see only themselves, managers see themselves plus direct
// reports, admins see every candidate. An empty candidate list yields an
// empty set for admins; the viewer themself is always visible otherwise.
func Resolve(viewer model.Viewer, candidates []model.UserRecord) []string {
	self := model.NormalizeEmail(viewer.Email)

	switch viewer.Role {
	case model.RoleExecutive:
		return []string{self}
	case model.RoleManager:
		visible := []string{self}
		seen := map[string]struct{}{self: {}}
		for _, u := range candidates {
			if model.NormalizeEmail(u.ReportsTo) != self {
				continue
			}
			e := model.NormalizeEmail(u.Email)
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			visible = append(visible, e)
		}
		return visible
	default:
		visible := make([]string, 0, len(candidates))
		seen := make(map[string]struct{}, len(candidates))
		for _, u := range candidates {
			e := model.NormalizeEmail(u.Email)
			if e == "" {
				continue
			}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			visible = append(visible, e)
		}
		return visible
	}
}
