package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/innerpath-app/innerpath/internal/domain"
)

// Goal options
type GoalOption func(*domain.Goal)

func WithGoalStatus(s domain.GoalStatus) GoalOption {
	return func(g *domain.Goal) {
		g.Status = s
	}
}

func WithCategory(c string) GoalOption {
	return func(g *domain.Goal) {
		g.Category = c
	}
}

func WithCheckpoint(i int) GoalOption {
	return func(g *domain.Goal) {
		g.CheckpointIndex = i
	}
}

func NewTestGoal(title string, opts ...GoalOption) *domain.Goal {
	now := time.Now().UTC()
	g := &domain.Goal{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  "learning",
		Status:    domain.GoalActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SubTask options
type SubTaskOption func(*domain.SubTask)

func WithOrderIndex(i int) SubTaskOption {
	return func(t *domain.SubTask) {
		t.OrderIndex = i
	}
}

func WithDurationSec(d int) SubTaskOption {
	return func(t *domain.SubTask) {
		t.DurationSec = d
		t.TimeLeftSec = d
	}
}

func WithResetMode(m domain.ResetMode) SubTaskOption {
	return func(t *domain.SubTask) {
		t.ResetMode = m
	}
}

func WithTaskStatus(s domain.TaskStatus) SubTaskOption {
	return func(t *domain.SubTask) {
		t.Status = s
	}
}

func WithTimerStartedAt(at time.Time) SubTaskOption {
	return func(t *domain.SubTask) {
		t.Status = domain.TaskActive
		t.TimerStartedAt = &at
	}
}

func NewTestSubTask(goalID, title string, opts ...SubTaskOption) *domain.SubTask {
	now := time.Now().UTC()
	t := &domain.SubTask{
		ID:          uuid.New().String(),
		GoalID:      goalID,
		Title:       title,
		DurationSec: 1500,
		TimeLeftSec: 1500,
		Status:      domain.TaskPending,
		ResetMode:   domain.ResetManual,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TimetableSlot options
type SlotOption func(*domain.TimetableSlot)

func WithCompleted() SlotOption {
	return func(s *domain.TimetableSlot) {
		s.Completed = true
	}
}

func WithXPDeducted() SlotOption {
	return func(s *domain.TimetableSlot) {
		s.XPDeducted = true
	}
}

func WithReminderSent() SlotOption {
	return func(s *domain.TimetableSlot) {
		s.ReminderSent = true
	}
}

func NewTestSlot(taskName string, startMin, endMin int, opts ...SlotOption) *domain.TimetableSlot {
	now := time.Now().UTC()
	s := &domain.TimetableSlot{
		ID:        uuid.New().String(),
		StartMin:  startMin,
		EndMin:    endMin,
		TaskName:  taskName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QuestRecord options
type RecordOption func(*domain.QuestRecord)

func WithOutcome(o domain.RecordOutcome, xpChange int) RecordOption {
	return func(r *domain.QuestRecord) {
		r.Outcome = o
		r.XPChange = xpChange
	}
}

func WithTimestamp(at time.Time) RecordOption {
	return func(r *domain.QuestRecord) {
		r.Timestamp = at
	}
}

func NewTestRecord(taskName string, opts ...RecordOption) *domain.QuestRecord {
	r := &domain.QuestRecord{
		ID:                 uuid.New().String(),
		TaskName:           taskName,
		Timestamp:          time.Now().UTC(),
		PlannedDurationMin: 25,
		Outcome:            domain.OutcomeCompleted,
		XPChange:           20,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
