package engine

import (
	"testing"
	"time"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickGoal_NoActiveStep(t *testing.T) {
	g := goalWith(&domain.SubTask{Status: domain.TaskPending})
	result := TickGoal(g, t0)
	assert.False(t, result.Changed)
	assert.Empty(t, result.Events)
}

func TestTickGoal_BeforeExpiry_NoChange(t *testing.T) {
	g := goalWith(activeTask(t0, 1500))
	result := TickGoal(g, t0.Add(1499*time.Second))
	assert.False(t, result.Changed)
}

func TestTickGoal_ManualExpiry_FailsOnce(t *testing.T) {
	g := goalWith(activeTask(t0, 1500))
	at := t0.Add(1500 * time.Second)

	result := TickGoal(g, at)
	require.True(t, result.Changed)
	require.Len(t, result.Events, 1)
	assert.Equal(t, EventPenalty, result.Events[0].Kind)
	assert.Equal(t, PenaltyStepFailed, result.Events[0].Magnitude)
	assert.Equal(t, domain.TaskFailed, g.SubTasks[0].Status)
	assert.Nil(t, g.SubTasks[0].TimerStartedAt)
	assert.Equal(t, 0, g.CheckpointIndex, "failure does not advance the checkpoint")
	require.Len(t, result.Notices, 1)
	assert.Equal(t, "Time Rests", result.Notices[0].Title)

	// A failed step no longer runs: the next tick is inert.
	again := TickGoal(g, at.Add(time.Second))
	assert.False(t, again.Changed)
	assert.Empty(t, again.Events, "penalty fires exactly once")
}

func TestTickGoal_AutoExpiry_RestartsWithoutPenalty(t *testing.T) {
	task := activeTask(t0, 600)
	task.ResetMode = domain.ResetAuto
	g := goalWith(task)
	at := t0.Add(600 * time.Second)

	result := TickGoal(g, at)
	require.True(t, result.Changed)
	assert.Empty(t, result.Events, "no failure event for auto reset")
	assert.Equal(t, domain.TaskActive, task.Status)
	require.NotNil(t, task.TimerStartedAt)
	assert.Equal(t, at, *task.TimerStartedAt, "anchor refreshed to expiry-processing time")
	assert.Equal(t, 600, Derive(task, at))
	require.Len(t, result.Notices, 1)
	assert.Equal(t, "Step Concluded", result.Notices[0].Title)
}

func TestTickGoal_DailyResetAcrossMidnight(t *testing.T) {
	// Anchored at 23:59:50 with a one hour duration: only 15 seconds have
	// elapsed by 00:00:05 the next day, yet the step must reset.
	anchor := time.Date(2025, 6, 15, 23, 59, 50, 0, time.UTC)
	task := activeTask(anchor, 3600)
	task.ResetMode = domain.ResetDaily
	g := goalWith(task)

	at := time.Date(2025, 6, 16, 0, 0, 5, 0, time.UTC)
	result := TickGoal(g, at)
	require.True(t, result.Changed)
	assert.Empty(t, result.Events)
	assert.Equal(t, domain.TaskActive, task.Status)
	assert.Equal(t, at, *task.TimerStartedAt)
	require.Len(t, result.Notices, 1)
	assert.Equal(t, "A New Morning", result.Notices[0].Title)
}

func TestTickGoal_DailyExpiryWithoutDayChange_Waits(t *testing.T) {
	task := activeTask(t0, 60)
	task.ResetMode = domain.ResetDaily
	g := goalWith(task)

	// Countdown hit zero but the calendar day is unchanged: a daily step
	// holds its state until midnight.
	result := TickGoal(g, t0.Add(2*time.Minute))
	assert.False(t, result.Changed)
	assert.Equal(t, domain.TaskActive, task.Status)
	assert.Equal(t, t0, *task.TimerStartedAt)
}

func TestTickGoal_DailyResetWinsOverZeroExpiry(t *testing.T) {
	// Both conditions hold in the same tick: day rolled over AND the
	// countdown reached zero. The day-boundary path takes precedence.
	anchor := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	task := activeTask(anchor, 60)
	task.ResetMode = domain.ResetDaily
	g := goalWith(task)

	at := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	result := TickGoal(g, at)
	require.True(t, result.Changed)
	assert.Empty(t, result.Events, "no penalty on a daily step")
	require.Len(t, result.Notices, 1)
	assert.Equal(t, "A New Morning", result.Notices[0].Title)
}

func TestDayChanged(t *testing.T) {
	base := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	assert.False(t, dayChanged(base, base.Add(-time.Hour)))
	assert.True(t, dayChanged(base, base.Add(time.Second)))
	assert.True(t, dayChanged(base, base.AddDate(0, 1, 0)))
	assert.True(t, dayChanged(base, base.AddDate(1, 0, 0)))
}

// Restart-after-failure, then complete: the scenario from a full run of a
// manual step that overruns once.
func TestScenario_FailRestartComplete(t *testing.T) {
	g := goalWith(
		activeTask(t0, 1500),
		&domain.SubTask{Title: "b", Status: domain.TaskPending, DurationSec: 1500},
		&domain.SubTask{Title: "c", Status: domain.TaskPending, DurationSec: 1500},
	)

	// Expire at t0+1500: failed, one penalty, checkpoint stays at 0.
	expiry := t0.Add(1500 * time.Second)
	result := TickGoal(g, expiry)
	require.Len(t, result.Events, 1)
	assert.Equal(t, EventPenalty, result.Events[0].Kind)
	assert.Equal(t, 0, g.CheckpointIndex)

	// Manual restart with the same duration.
	require.NoError(t, StartStep(g, 0, expiry, StartOptions{}))
	assert.Equal(t, domain.TaskActive, g.SubTasks[0].Status)

	// Complete 100 seconds in: one reward, checkpoint advances to 1.
	ev, err := CompleteStep(g, 0, expiry.Add(100*time.Second))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, RewardStepCompleted, ev.Magnitude)
	assert.Equal(t, 1, g.CheckpointIndex)
}
