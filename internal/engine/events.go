package engine

import "time"

type EventKind string

const (
	EventReward  EventKind = "reward"
	EventPenalty EventKind = "penalty"
)

// Event is an abstract score-change notification. The engine decides when
// and how much; the progression reducer decides what it does to the profile.
type Event struct {
	Kind      EventKind
	Magnitude int
	Reason    string
	TaskName  string
	Timestamp time.Time

	// PlannedMin carries the planned duration for history records.
	PlannedMin int
}

// Notice is a human-readable notification. Delivery is the notify
// collaborator's concern; the engine only decides the wording and timing.
type Notice struct {
	Title string
	Body  string
}

// TickResult collects everything a single tick produced. Changed reports
// whether any snapshot mutation occurred and therefore needs persisting.
type TickResult struct {
	Events  []Event
	Notices []Notice
	Changed bool
}

// Merge folds another tick's output into this one.
func (r *TickResult) Merge(other TickResult) {
	r.Events = append(r.Events, other.Events...)
	r.Notices = append(r.Notices, other.Notices...)
	r.Changed = r.Changed || other.Changed
}

// Fixed event magnitudes.
const (
	RewardStepCompleted  = 20
	PenaltyStepFailed    = 10
	RewardSlotOnTime     = 50
	RewardSlotLate       = 0
	PenaltySlotMissed    = 30
	ReminderLeadMin      = 5
)

// Event reasons, recorded in the history log.
const (
	ReasonStepCompleted = "step_completed"
	ReasonStepFailed    = "step_failed"
	ReasonSlotCompleted = "slot_completed"
	ReasonSlotLate      = "slot_late"
	ReasonSlotMissed    = "slot_missed"
)
