package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/engine"
	"github.com/innerpath-app/innerpath/internal/notify"
	"github.com/innerpath-app/innerpath/internal/repository"
	"github.com/innerpath-app/innerpath/internal/testutil"
)

type tickFixture struct {
	svc      TickService
	goals    repository.GoalRepo
	tasks    repository.SubTaskRepo
	slots    repository.SlotRepo
	profiles repository.ProfileRepo
	records  repository.RecordRepo
	recorder *notify.Recorder
}

func newTickFixture(t *testing.T) *tickFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	recorder := &notify.Recorder{}
	return &tickFixture{
		svc:      NewTickService(testutil.NewTestUoW(db), recorder, nil),
		goals:    repository.NewSQLiteGoalRepo(db),
		tasks:    repository.NewSQLiteSubTaskRepo(db),
		slots:    repository.NewSQLiteSlotRepo(db),
		profiles: repository.NewSQLiteProfileRepo(db),
		records:  repository.NewSQLiteRecordRepo(db),
		recorder: recorder,
	}
}

// seedActiveStep stores a goal whose first step started at anchor with the
// given duration and reset mode.
func (f *tickFixture) seedActiveStep(t *testing.T, anchor time.Time, durationSec int, mode domain.ResetMode) *domain.Goal {
	t.Helper()
	ctx := context.Background()
	goal := testutil.NewTestGoal("Learn Go")
	require.NoError(t, f.goals.Create(ctx, goal))

	task := testutil.NewTestSubTask(goal.ID, "Read the basics",
		testutil.WithDurationSec(durationSec),
		testutil.WithResetMode(mode),
		testutil.WithTimerStartedAt(anchor),
	)
	require.NoError(t, f.tasks.Create(ctx, task))
	return goal
}

func TestTickService_NoActiveGoal_NoSlots(t *testing.T) {
	f := newTickFixture(t)

	result, err := f.svc.RunTick(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, result.Events)
}

func TestTickService_ManualExpiry_FailsOnceWithPenalty(t *testing.T) {
	f := newTickFixture(t)
	ctx := context.Background()

	anchor := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	goal := f.seedActiveStep(t, anchor, 1500, domain.ResetManual)

	// mark profile active today so the day rollover does not fire
	profile, err := f.profiles.Get(ctx)
	require.NoError(t, err)
	active := anchor
	profile.LastActive = &active
	require.NoError(t, f.profiles.Upsert(ctx, profile))

	now := anchor.Add(1501 * time.Second)
	result, err := f.svc.RunTick(ctx, now)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Len(t, result.Events, 1)
	assert.Equal(t, engine.EventPenalty, result.Events[0].Kind)

	steps, err := f.tasks.ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskFailed, steps[0].Status)
	assert.Nil(t, steps[0].TimerStartedAt)

	profile, err = f.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.XP, "penalty clamps at zero")
	assert.True(t, profile.RecoveryNeeded)

	history, err := f.records.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.OutcomeFailed, history[0].Outcome)
	assert.Equal(t, -engine.PenaltyStepFailed, history[0].XPChange)

	require.Len(t, f.recorder.Notices, 1)

	// a second tick finds nothing running and changes nothing
	again, err := f.svc.RunTick(ctx, now.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Len(t, f.recorder.Notices, 1, "no repeat notice")
}

func TestTickService_ManualExpiry_DeductsFromBalance(t *testing.T) {
	f := newTickFixture(t)
	ctx := context.Background()

	anchor := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	f.seedActiveStep(t, anchor, 1500, domain.ResetManual)

	profile, err := f.profiles.Get(ctx)
	require.NoError(t, err)
	profile.XP = 25
	active := anchor
	profile.LastActive = &active
	require.NoError(t, f.profiles.Upsert(ctx, profile))

	result, err := f.svc.RunTick(ctx, anchor.Add(1501*time.Second))
	require.NoError(t, err)
	require.True(t, result.Changed)

	profile, err = f.profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25-engine.PenaltyStepFailed, profile.XP)
}

func TestTickService_AutoExpiry_RestartsWithoutPenalty(t *testing.T) {
	f := newTickFixture(t)
	ctx := context.Background()

	anchor := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	goal := f.seedActiveStep(t, anchor, 600, domain.ResetAuto)

	profile, err := f.profiles.Get(ctx)
	require.NoError(t, err)
	active := anchor
	profile.LastActive = &active
	require.NoError(t, f.profiles.Upsert(ctx, profile))

	now := anchor.Add(601 * time.Second)
	result, err := f.svc.RunTick(ctx, now)
	require.NoError(t, err)
	require.True(t, result.Changed)
	assert.Empty(t, result.Events, "auto reset carries no penalty")

	steps, err := f.tasks.ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskActive, steps[0].Status)
	require.NotNil(t, steps[0].TimerStartedAt)
	assert.True(t, steps[0].TimerStartedAt.Equal(now), "anchor refreshed to processing time")
}

func TestTickService_DayRollover_ResetsSlotFlags(t *testing.T) {
	f := newTickFixture(t)
	ctx := context.Background()

	yesterday := time.Date(2025, 6, 14, 22, 0, 0, 0, time.UTC)
	profile, err := f.profiles.Get(ctx)
	require.NoError(t, err)
	profile.LastActive = &yesterday
	require.NoError(t, f.profiles.Upsert(ctx, profile))

	slot := testutil.NewTestSlot("Morning reading", 9*60, 10*60,
		testutil.WithCompleted(), testutil.WithReminderSent(), testutil.WithXPDeducted())
	require.NoError(t, f.slots.Create(ctx, slot))

	// 08:00 next day: before the slot window, so only the rollover acts
	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	_, err = f.svc.RunTick(ctx, now)
	require.NoError(t, err)

	got, err := f.slots.GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.False(t, got.ReminderSent)
	assert.False(t, got.XPDeducted)
}

func TestTickService_SlotReminderAndMissedPenalty(t *testing.T) {
	f := newTickFixture(t)
	ctx := context.Background()

	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	profile, err := f.profiles.Get(ctx)
	require.NoError(t, err)
	morning := day.Add(7 * time.Hour)
	profile.LastActive = &morning
	require.NoError(t, f.profiles.Upsert(ctx, profile))

	slot := testutil.NewTestSlot("Morning reading", 9*60, 10*60)
	require.NoError(t, f.slots.Create(ctx, slot))

	// 08:55, the reminder minute
	result, err := f.svc.RunTick(ctx, day.Add(8*time.Hour+55*time.Minute))
	require.NoError(t, err)
	assert.True(t, result.Changed)
	require.Len(t, f.recorder.Notices, 1)

	// same minute again: flag holds it down
	result, err = f.svc.RunTick(ctx, day.Add(8*time.Hour+55*time.Minute+30*time.Second))
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Len(t, f.recorder.Notices, 1)

	// 10:00 sharp: slot missed, one penalty
	result, err = f.svc.RunTick(ctx, day.Add(10*time.Hour))
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, engine.PenaltySlotMissed, result.Events[0].Magnitude)

	// later ticks stay quiet
	result, err = f.svc.RunTick(ctx, day.Add(11*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, result.Events)

	history, err := f.records.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.OutcomeMissed, history[0].Outcome)
}

func TestTickService_DailyStep_ResetsOnDayBoundary(t *testing.T) {
	f := newTickFixture(t)
	ctx := context.Background()

	anchor := time.Date(2025, 6, 14, 23, 59, 50, 0, time.UTC)
	goal := f.seedActiveStep(t, anchor, 3600, domain.ResetDaily)

	profile, err := f.profiles.Get(ctx)
	require.NoError(t, err)
	profile.LastActive = &anchor
	require.NoError(t, f.profiles.Upsert(ctx, profile))

	now := time.Date(2025, 6, 15, 0, 0, 5, 0, time.UTC)
	result, err := f.svc.RunTick(ctx, now)
	require.NoError(t, err)
	require.True(t, result.Changed)
	assert.Empty(t, result.Events)

	steps, err := f.tasks.ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskActive, steps[0].Status)
	require.NotNil(t, steps[0].TimerStartedAt)
	assert.True(t, steps[0].TimerStartedAt.Equal(now),
		"daily reset re-anchors even though barely any time elapsed")
}
