// Package engine implements the task timer and timetable slot state
// machines. All functions are pure with respect to time: they take the
// current instant as an argument and never read the system clock, so every
// transition is reproducible in tests and idempotent on replay.
package engine

import (
	"fmt"
	"time"

	"github.com/innerpath-app/innerpath/internal/domain"
)

// Derive computes the authoritative remaining seconds for a sub-task.
// For an active task the value is recomputed from the wall-clock anchor;
// otherwise the cached TimeLeftSec is returned unchanged. Negative elapsed
// time (device clock moved backwards) clamps the same way expiry does.
func Derive(task *domain.SubTask, now time.Time) int {
	if task.Status != domain.TaskActive || task.TimerStartedAt == nil {
		return task.TimeLeftSec
	}
	elapsed := int(now.Sub(*task.TimerStartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := task.DurationSec - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StartOptions carries optional overrides for StartStep. Zero values mean
// "keep the task's existing duration / reset mode".
type StartOptions struct {
	DurationSec int
	Mode        domain.ResetMode
}

// StartStep activates the sub-task at index and records it as the goal's
// checkpoint. Restarting pending, failed, or active steps is allowed;
// a completed step is left untouched.
func StartStep(goal *domain.Goal, index int, now time.Time, opts StartOptions) error {
	if index < 0 || index >= len(goal.SubTasks) {
		return fmt.Errorf("step index %d out of range (goal has %d steps)", index, len(goal.SubTasks))
	}
	task := goal.SubTasks[index]
	if err := task.Start(now, opts.DurationSec, opts.Mode); err != nil {
		return err
	}
	goal.CheckpointIndex = index
	goal.UpdatedAt = now
	return nil
}

// CompleteStep moves the step at index to completed, advances the
// checkpoint, and emits a fixed reward. Completing an already-completed
// step returns no event: the double-award hazard is closed here, not
// delegated to callers.
func CompleteStep(goal *domain.Goal, index int, now time.Time) (*Event, error) {
	if index < 0 || index >= len(goal.SubTasks) {
		return nil, fmt.Errorf("step index %d out of range (goal has %d steps)", index, len(goal.SubTasks))
	}
	task := goal.SubTasks[index]
	if task.Completed() {
		return nil, nil
	}
	if err := task.MarkCompleted(now); err != nil {
		return nil, err
	}
	goal.AdvanceCheckpoint(index)
	goal.UpdatedAt = now

	return &Event{
		Kind:       EventReward,
		Magnitude:  RewardStepCompleted,
		Reason:     ReasonStepCompleted,
		TaskName:   task.Title,
		Timestamp:  now,
		PlannedMin: task.DurationSec / 60,
	}, nil
}

// SetResetMode changes a step's expiry policy without touching its timer.
func SetResetMode(goal *domain.Goal, index int, mode domain.ResetMode, now time.Time) error {
	if index < 0 || index >= len(goal.SubTasks) {
		return fmt.Errorf("step index %d out of range (goal has %d steps)", index, len(goal.SubTasks))
	}
	if !domain.ValidResetModes[string(mode)] {
		return fmt.Errorf("unknown reset mode %q", mode)
	}
	goal.SubTasks[index].ResetMode = mode
	goal.SubTasks[index].UpdatedAt = now
	goal.UpdatedAt = now
	return nil
}
