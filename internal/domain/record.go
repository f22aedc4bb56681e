package domain

import "time"

// QuestRecord is one immutable entry in the reward/penalty history log.
// XPChange is signed: positive for rewards, negative for penalties.
type QuestRecord struct {
	ID                 string
	TaskName           string
	Timestamp          time.Time
	PlannedDurationMin int
	Outcome            RecordOutcome
	XPChange           int
}
