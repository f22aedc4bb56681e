package engine

import (
	"time"

	"github.com/innerpath-app/innerpath/internal/domain"
)

// expiryHandler applies one reset policy when an active step's timer hits
// zero. Adding a reset mode means adding an entry here, not another branch
// in the tick loop.
type expiryHandler func(goal *domain.Goal, index int, now time.Time) TickResult

var expiryHandlers = map[domain.ResetMode]expiryHandler{
	domain.ResetManual: expireManual,
	domain.ResetAuto:   expireAuto,
	// ResetDaily is intentionally absent: daily steps reset on the calendar
	// day boundary, never on the countdown reaching zero. A daily step that
	// runs out of seconds simply waits for midnight.
}

// TickGoal advances the active step's state machine for one clock tick.
// The day-boundary check runs before the zero-expiry check, so when both
// conditions hold in the same tick the daily reset wins.
func TickGoal(goal *domain.Goal, now time.Time) TickResult {
	task := goal.ActiveStep()
	if task == nil || !task.Running() {
		return TickResult{}
	}

	if task.ResetMode == domain.ResetDaily && dayChanged(*task.TimerStartedAt, now) {
		return resetDaily(goal, goal.CheckpointIndex, now)
	}

	if Derive(task, now) > 0 {
		return TickResult{}
	}
	handler, ok := expiryHandlers[task.ResetMode]
	if !ok {
		return TickResult{}
	}
	return handler(goal, goal.CheckpointIndex, now)
}

// expireManual is the terminal path: the run fails, a penalty fires, and
// the user must restart explicitly.
func expireManual(goal *domain.Goal, index int, now time.Time) TickResult {
	task := goal.SubTasks[index]
	if err := task.MarkFailed(now); err != nil {
		return TickResult{}
	}
	goal.UpdatedAt = now
	return TickResult{
		Changed: true,
		Events: []Event{{
			Kind:       EventPenalty,
			Magnitude:  PenaltyStepFailed,
			Reason:     ReasonStepFailed,
			TaskName:   task.Title,
			Timestamp:  now,
			PlannedMin: task.DurationSec / 60,
		}},
		Notices: []Notice{{
			Title: "Time Rests",
			Body:  "Our time for \"" + task.Title + "\" has come to an end.",
		}},
	}
}

// expireAuto restarts the step immediately with the same duration. The
// self-loop has no bound: an auto step repeats until completed or switched.
func expireAuto(goal *domain.Goal, index int, now time.Time) TickResult {
	task := goal.SubTasks[index]
	if err := task.Start(now, task.DurationSec, domain.ResetAuto); err != nil {
		return TickResult{}
	}
	goal.UpdatedAt = now
	return TickResult{
		Changed: true,
		Notices: []Notice{{
			Title: "Step Concluded",
			Body:  "Our focus on \"" + task.Title + "\" has finished. Beginning again.",
		}},
	}
}

// resetDaily re-anchors a daily step because the local calendar day rolled
// over, regardless of how much of the countdown had elapsed.
func resetDaily(goal *domain.Goal, index int, now time.Time) TickResult {
	task := goal.SubTasks[index]
	if err := task.Start(now, task.DurationSec, domain.ResetDaily); err != nil {
		return TickResult{}
	}
	goal.UpdatedAt = now
	return TickResult{
		Changed: true,
		Notices: []Notice{{
			Title: "A New Morning",
			Body:  "Your daily rhythm has reset, friend.",
		}},
	}
}

// dayChanged reports whether two instants fall on different local calendar
// days.
func dayChanged(anchor, now time.Time) bool {
	ay, am, ad := anchor.Date()
	ny, nm, nd := now.Date()
	return ay != ny || am != nm || ad != nd
}
