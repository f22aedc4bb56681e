package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func threeStepGoal() *Goal {
	return &Goal{
		ID:     "g1",
		Title:  "Learn watercolor",
		Status: GoalActive,
		SubTasks: []*SubTask{
			{ID: "t0", OrderIndex: 0, Status: TaskPending},
			{ID: "t1", OrderIndex: 1, Status: TaskPending},
			{ID: "t2", OrderIndex: 2, Status: TaskPending},
		},
	}
}

func TestAwaitingBreakdown(t *testing.T) {
	g := &Goal{Status: GoalActive}
	assert.True(t, g.AwaitingBreakdown())
	g.SubTasks = []*SubTask{{ID: "t0"}}
	assert.False(t, g.AwaitingBreakdown())
}

func TestActiveStep_Bounds(t *testing.T) {
	g := threeStepGoal()
	assert.Equal(t, "t0", g.ActiveStep().ID)

	g.CheckpointIndex = 2
	assert.Equal(t, "t2", g.ActiveStep().ID)

	g.CheckpointIndex = 3
	assert.Nil(t, g.ActiveStep())

	empty := &Goal{}
	assert.Nil(t, empty.ActiveStep())
}

func TestAdvanceCheckpoint_LastStepStays(t *testing.T) {
	g := threeStepGoal()
	g.AdvanceCheckpoint(0)
	assert.Equal(t, 1, g.CheckpointIndex)
	g.AdvanceCheckpoint(1)
	assert.Equal(t, 2, g.CheckpointIndex)
	g.AdvanceCheckpoint(2)
	assert.Equal(t, 2, g.CheckpointIndex, "final step remains the checkpoint")
}

func TestFinish(t *testing.T) {
	g := threeStepGoal()
	g.Finish(testNow)
	assert.Equal(t, GoalCompleted, g.Status)
	assert.NotNil(t, g.FinishedAt)
	assert.Equal(t, testNow, *g.FinishedAt)
}

func TestCompletedSteps(t *testing.T) {
	g := threeStepGoal()
	assert.Equal(t, 0, g.CompletedSteps())
	g.SubTasks[0].Status = TaskCompleted
	g.SubTasks[2].Status = TaskCompleted
	assert.Equal(t, 2, g.CompletedSteps())
}
