// Package progression applies reward and penalty events to the user
// profile. It is an explicit reducer over the profile value: callers load
// the profile, apply events, and persist the result, with no ambient
// mutable state.
package progression

import (
	"time"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/engine"
)

// Level thresholds and decay tuning.
const (
	xpPerLevel       = 500
	streakBonusStep  = 5 // every 5 streak days adds 5 bonus XP to rewards
	decayPerDay      = 5
	decayAbsenceDays = 2
)

// Apply folds one engine event into the profile. Rewards are monotonic:
// the score never decreases, and a streak bonus is added on top.
// Penalties clamp the cumulative score at zero and flag recovery.
func Apply(profile *domain.UserProfile, ev engine.Event) {
	switch ev.Kind {
	case engine.EventReward:
		bonus := (profile.Streak / streakBonusStep) * streakBonusStep
		profile.XP += ev.Magnitude + bonus
		profile.RecoveryNeeded = false
		profile.TotalFocusMin += ev.PlannedMin
	case engine.EventPenalty:
		profile.XP -= ev.Magnitude
		if profile.XP < 0 {
			profile.XP = 0
		}
		profile.RecoveryNeeded = true
	}
	profile.Level = LevelForXP(profile.XP)
	unlockBadges(profile)
}

// LevelForXP derives the level from cumulative XP.
func LevelForXP(xp int) int {
	return xp/xpPerLevel + 1
}

func unlockBadges(profile *domain.UserProfile) {
	if profile.XP >= 500 && !profile.HasBadge("b5") {
		profile.Badges = append(profile.Badges, "b5")
	}
	if profile.Level >= 10 && !profile.HasBadge("b10") {
		profile.Badges = append(profile.Badges, "b10")
	}
	if profile.Streak >= 7 && !profile.HasBadge("b4") {
		profile.Badges = append(profile.Badges, "b4")
	}
}

// DecayForAbsence erodes XP when the user has been away two or more full
// days: five points per absent day, clamped at zero. Returns the number of
// points removed.
func DecayForAbsence(profile *domain.UserProfile, now time.Time) int {
	if profile.LastActive == nil {
		return 0
	}
	days := int(now.Sub(*profile.LastActive).Hours() / 24)
	if days < decayAbsenceDays {
		return 0
	}
	decay := days * decayPerDay
	if decay > profile.XP {
		decay = profile.XP
	}
	profile.XP -= decay
	profile.Level = LevelForXP(profile.XP)
	return decay
}

// AdvanceStreak updates the consecutive-day counter for a rewarded
// action. Same-day activity leaves it unchanged, the next calendar day
// increments it, and a gap of two or more days starts over at one.
func AdvanceStreak(profile *domain.UserProfile, now time.Time) {
	if profile.LastActive == nil {
		profile.Streak = 1
		return
	}
	last := *profile.LastActive
	ly, lm, ld := last.Date()
	ny, nm, nd := now.Date()
	if ly == ny && lm == nm && ld == nd {
		return
	}
	if now.Sub(last).Hours() < 48 {
		profile.Streak++
		return
	}
	profile.Streak = 1
}

// Touch stamps the profile as active now. Called on every persisted save.
func Touch(profile *domain.UserProfile, now time.Time) {
	active := now
	profile.LastActive = &active
}

// RecordFor builds the immutable history entry for an applied event.
func RecordFor(id string, ev engine.Event) domain.QuestRecord {
	change := ev.Magnitude
	outcome := outcomeFor(ev.Reason)
	if ev.Kind == engine.EventPenalty {
		change = -change
	}
	return domain.QuestRecord{
		ID:                 id,
		TaskName:           ev.TaskName,
		Timestamp:          ev.Timestamp,
		PlannedDurationMin: ev.PlannedMin,
		Outcome:            outcome,
		XPChange:           change,
	}
}

func outcomeFor(reason string) domain.RecordOutcome {
	switch reason {
	case engine.ReasonStepCompleted, engine.ReasonSlotCompleted:
		return domain.OutcomeCompleted
	case engine.ReasonStepFailed:
		return domain.OutcomeFailed
	case engine.ReasonSlotMissed:
		return domain.OutcomeMissed
	case engine.ReasonSlotLate:
		return domain.OutcomeLate
	default:
		return domain.OutcomeCompleted
	}
}
