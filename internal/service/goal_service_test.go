package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/engine"
	"github.com/innerpath-app/innerpath/internal/repository"
	"github.com/innerpath-app/innerpath/internal/testutil"
)

func newGoalFixture(t *testing.T) (GoalService, repository.GoalRepo, repository.ProfileRepo, repository.RecordRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	goals := repository.NewSQLiteGoalRepo(db)
	tasks := repository.NewSQLiteSubTaskRepo(db)
	profiles := repository.NewSQLiteProfileRepo(db)
	records := repository.NewSQLiteRecordRepo(db)
	svc := NewGoalService(goals, tasks, testutil.NewTestUoW(db))
	return svc, goals, profiles, records
}

func threeSteps() []StepInput {
	return []StepInput{
		{Title: "Read the basics", Description: "intro chapter", DurationMin: 25},
		{Title: "Do the exercises", DurationMin: 30},
		{Title: "Build something small", DurationMin: 60},
	}
}

func TestGoalService_Create_RequiresTitle(t *testing.T) {
	svc, _, _, _ := newGoalFixture(t)

	err := svc.Create(context.Background(), &domain.Goal{})
	assert.Error(t, err)
}

func TestGoalService_Create_DefaultsAndPersists(t *testing.T) {
	svc, _, _, _ := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go", Category: "career"}
	require.NoError(t, svc.Create(ctx, g))
	assert.NotEmpty(t, g.ID)

	got, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GoalActive, got.Status)
	assert.True(t, got.AwaitingBreakdown())
}

func TestGoalService_InstallBreakdown_AttachesOrderedSteps(t *testing.T) {
	svc, _, _, _ := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go"}
	require.NoError(t, svc.Create(ctx, g))
	require.NoError(t, svc.InstallBreakdown(ctx, g.ID, threeSteps()))

	got, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, got.SubTasks, 3)
	assert.False(t, got.AwaitingBreakdown())
	assert.Equal(t, "Read the basics", got.SubTasks[0].Title)
	assert.Equal(t, 25*60, got.SubTasks[0].DurationSec)
	assert.Equal(t, domain.TaskPending, got.SubTasks[0].Status)
	assert.Equal(t, domain.ResetManual, got.SubTasks[0].ResetMode)
	assert.Equal(t, 0, got.CheckpointIndex)
}

func TestGoalService_InstallBreakdown_RejectsInvalidInput(t *testing.T) {
	svc, _, _, _ := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go"}
	require.NoError(t, svc.Create(ctx, g))

	assert.Error(t, svc.InstallBreakdown(ctx, g.ID, nil), "empty breakdown")

	tooMany := make([]StepInput, 11)
	for i := range tooMany {
		tooMany[i] = StepInput{Title: "step", DurationMin: 10}
	}
	assert.Error(t, svc.InstallBreakdown(ctx, g.ID, tooMany), "more than ten steps")

	assert.Error(t, svc.InstallBreakdown(ctx, g.ID, []StepInput{
		{Title: "", DurationMin: 10},
	}), "missing title")

	assert.Error(t, svc.InstallBreakdown(ctx, g.ID, []StepInput{
		{Title: "step", DurationMin: 0},
	}), "non-positive duration")

	// nothing landed
	got, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, got.AwaitingBreakdown())
}

func TestGoalService_InstallBreakdown_RejectsSecondBreakdown(t *testing.T) {
	svc, _, _, _ := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go"}
	require.NoError(t, svc.Create(ctx, g))
	require.NoError(t, svc.InstallBreakdown(ctx, g.ID, threeSteps()))

	err := svc.InstallBreakdown(ctx, g.ID, threeSteps())
	assert.Error(t, err)
}

func TestGoalService_StartAndCompleteStep_AppliesReward(t *testing.T) {
	svc, _, profiles, records := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go"}
	require.NoError(t, svc.Create(ctx, g))
	require.NoError(t, svc.InstallBreakdown(ctx, g.ID, threeSteps()))
	require.NoError(t, svc.StartStep(ctx, g.ID, 0, engine.StartOptions{}))

	now := time.Now().UTC()
	ev, err := svc.CompleteStep(ctx, g.ID, 0, now)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, engine.RewardStepCompleted, ev.Magnitude)

	profile, err := profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.RewardStepCompleted, profile.XP)
	assert.Equal(t, 1, profile.Streak, "first rewarded day starts the streak")
	require.NotNil(t, profile.LastActive)

	got, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CheckpointIndex, "checkpoint advances past the finished step")
	assert.Equal(t, domain.TaskCompleted, got.SubTasks[0].Status)

	history, err := records.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.OutcomeCompleted, history[0].Outcome)
	assert.Equal(t, engine.RewardStepCompleted, history[0].XPChange)
}

func TestGoalService_CompleteStep_SecondCompletionAwardsNothing(t *testing.T) {
	svc, _, profiles, _ := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go"}
	require.NoError(t, svc.Create(ctx, g))
	require.NoError(t, svc.InstallBreakdown(ctx, g.ID, threeSteps()))
	require.NoError(t, svc.StartStep(ctx, g.ID, 0, engine.StartOptions{}))

	now := time.Now().UTC()
	_, err := svc.CompleteStep(ctx, g.ID, 0, now)
	require.NoError(t, err)

	ev, err := svc.CompleteStep(ctx, g.ID, 0, now.Add(time.Second))
	require.NoError(t, err)
	assert.Nil(t, ev)

	profile, err := profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.RewardStepCompleted, profile.XP, "no double award")
}

func TestGoalService_SetResetMode(t *testing.T) {
	svc, _, _, _ := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go"}
	require.NoError(t, svc.Create(ctx, g))
	require.NoError(t, svc.InstallBreakdown(ctx, g.ID, threeSteps()))

	require.NoError(t, svc.SetResetMode(ctx, g.ID, 1, domain.ResetDaily))
	assert.Error(t, svc.SetResetMode(ctx, g.ID, 1, domain.ResetMode("weekly")))

	got, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ResetDaily, got.SubTasks[1].ResetMode)
}

func TestGoalService_Finish_SummarizesAndArchives(t *testing.T) {
	svc, goals, _, _ := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go"}
	require.NoError(t, svc.Create(ctx, g))
	require.NoError(t, svc.InstallBreakdown(ctx, g.ID, threeSteps()))
	require.NoError(t, svc.StartStep(ctx, g.ID, 0, engine.StartOptions{}))
	_, err := svc.CompleteStep(ctx, g.ID, 0, time.Now().UTC())
	require.NoError(t, err)

	summary, err := svc.Finish(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Learn Go", summary.Title)
	assert.Equal(t, 1, summary.CompletedSteps)
	assert.Equal(t, 3, summary.TotalSteps)
	assert.Equal(t, 25, summary.FocusMin)

	_, err = goals.GetActive(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound, "finished goal is no longer active")

	_, err = svc.Finish(ctx, g.ID)
	assert.Error(t, err, "finishing twice is rejected")
}

func TestGoalService_Active_NotFoundWithoutGoal(t *testing.T) {
	svc, _, _, _ := newGoalFixture(t)

	_, err := svc.Active(context.Background())
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestGoalService_AddStep_AppendsAfterExisting(t *testing.T) {
	svc, _, _, _ := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go"}
	require.NoError(t, svc.Create(ctx, g))
	require.NoError(t, svc.InstallBreakdown(ctx, g.ID, threeSteps()))

	require.NoError(t, svc.AddStep(ctx, g.ID, StepInput{Title: "Write a blog post", DurationMin: 45}))

	got, err := svc.Get(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, got.SubTasks, 4)
	assert.Equal(t, "Write a blog post", got.SubTasks[3].Title)
	assert.Equal(t, 3, got.SubTasks[3].OrderIndex)
	assert.Equal(t, 45*60, got.SubTasks[3].DurationSec)
}

func TestGoalService_AddStep_RejectsBadInput(t *testing.T) {
	svc, _, _, _ := newGoalFixture(t)
	ctx := context.Background()

	g := &domain.Goal{Title: "Learn Go"}
	require.NoError(t, svc.Create(ctx, g))

	assert.Error(t, svc.AddStep(ctx, g.ID, StepInput{DurationMin: 25}), "missing title")
	assert.Error(t, svc.AddStep(ctx, g.ID, StepInput{Title: "Step", DurationMin: 0}), "zero duration")
}
