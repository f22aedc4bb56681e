package domain

import "time"

// UserProfile is the single local user's cumulative progression state.
type UserProfile struct {
	ID             string
	Name           string
	XP             int
	Streak         int
	Level          int
	Badges         []string
	RecoveryNeeded bool
	TotalFocusMin  int
	Theme          Theme
	LastActive     *time.Time
}

// HasBadge reports whether the badge ID has been unlocked.
func (p *UserProfile) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}
