package domain

import (
	"fmt"
	"time"
)

// SubTask is one timed step on a goal's path. The timer is anchored to a
// wall-clock instant rather than a decrementing counter, so remaining time
// survives process restarts. TimeLeftSec is a display cache and is never
// authoritative while the task is active.
type SubTask struct {
	ID          string
	GoalID      string
	OrderIndex  int
	Title       string
	Description string
	Explanation string

	DurationSec    int
	TimeLeftSec    int
	TimerStartedAt *time.Time
	Status         TaskStatus
	ResetMode      ResetMode

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Completed reports whether the step has reached its terminal completed state.
func (t *SubTask) Completed() bool {
	return t.Status == TaskCompleted
}

// Running reports whether the step has a live timer anchor.
// Invariant: TimerStartedAt is non-nil iff Status is active.
func (t *SubTask) Running() bool {
	return t.Status == TaskActive && t.TimerStartedAt != nil
}

// Start activates the step and anchors its timer at now. Duration and reset
// mode carry over unless overridden. Restarting a pending, failed, or
// already-active step is allowed; starting a completed step is not.
func (t *SubTask) Start(now time.Time, durationSec int, mode ResetMode) error {
	if t.Status == TaskCompleted {
		return fmt.Errorf("sub-task %q is completed and cannot be restarted", t.Title)
	}
	if durationSec > 0 {
		t.DurationSec = durationSec
	}
	if mode != "" {
		t.ResetMode = mode
	}
	if t.ResetMode == "" {
		t.ResetMode = ResetManual
	}
	t.Status = TaskActive
	anchor := now
	t.TimerStartedAt = &anchor
	t.TimeLeftSec = t.DurationSec
	t.UpdatedAt = now
	return nil
}

// MarkCompleted moves the step to its terminal completed state.
// Completing an already-completed step is a benign no-op.
func (t *SubTask) MarkCompleted(now time.Time) error {
	if t.Status == TaskCompleted {
		return nil
	}
	t.Status = TaskCompleted
	t.TimerStartedAt = nil
	t.UpdatedAt = now
	return nil
}

// MarkFailed records timer expiry under the manual reset mode.
// Only an active step can fail.
func (t *SubTask) MarkFailed(now time.Time) error {
	if t.Status != TaskActive {
		return fmt.Errorf("sub-task %q is %s, only an active step can fail", t.Title, t.Status)
	}
	t.Status = TaskFailed
	t.TimerStartedAt = nil
	t.TimeLeftSec = 0
	t.UpdatedAt = now
	return nil
}
