package service

import (
	"context"
	"time"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/engine"
)

// StepInput is one step of a goal decomposition, as produced by the mentor
// or entered by hand.
type StepInput struct {
	Title       string
	Description string
	Explanation string
	DurationMin int
}

// GoalSummary is the parting view shown when a goal is finished.
type GoalSummary struct {
	Title          string
	CompletedSteps int
	TotalSteps     int
	FocusMin       int
	FinishedAt     time.Time
}

type GoalService interface {
	Create(ctx context.Context, g *domain.Goal) error
	Get(ctx context.Context, id string) (*domain.Goal, error)
	// Active returns the current goal with its sub-tasks attached, or
	// repository.ErrNotFound when no goal is underway.
	Active(ctx context.Context) (*domain.Goal, error)
	// InstallBreakdown attaches a decomposition to a goal that is still
	// awaiting one. All steps land or none do.
	InstallBreakdown(ctx context.Context, goalID string, steps []StepInput) error

	// AddStep appends a single step after any existing ones. It is the
	// manual alternative to a mentor breakdown.
	AddStep(ctx context.Context, goalID string, step StepInput) error
	StartStep(ctx context.Context, goalID string, index int, opts engine.StartOptions) error
	// CompleteStep finishes a step, advances the checkpoint, and applies
	// the reward. The returned event is nil when the step was already
	// completed.
	CompleteStep(ctx context.Context, goalID string, index int, now time.Time) (*engine.Event, error)
	SetResetMode(ctx context.Context, goalID string, index int, mode domain.ResetMode) error
	Finish(ctx context.Context, goalID string) (*GoalSummary, error)
}

type TimetableService interface {
	// Add creates a slot from HH:mm bounds. End must come after start.
	Add(ctx context.Context, taskName, start, end string) (*domain.TimetableSlot, error)
	List(ctx context.Context) ([]*domain.TimetableSlot, error)
	// Toggle acknowledges a slot at now, applying the on-time or late
	// reward. The returned event is nil when the slot was already done.
	Toggle(ctx context.Context, id string, now time.Time) (*engine.Event, error)
	Remove(ctx context.Context, id string) error
}

type TickService interface {
	// RunTick advances every timer and slot state machine to now,
	// persisting mutations, applying emitted events to the profile, and
	// appending history records, all in one transaction.
	RunTick(ctx context.Context, now time.Time) (engine.TickResult, error)
}

type ProfileService interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	// Setup records onboarding choices.
	Setup(ctx context.Context, name string, theme domain.Theme) error
	// SyncOnOpen applies absence decay on process start and stamps the
	// profile active. Returns the XP removed, zero for a recent return.
	SyncOnOpen(ctx context.Context, now time.Time) (int, error)
}

// SlotStatus pairs a slot with its phase at a given instant.
type SlotStatus struct {
	Slot         *domain.TimetableSlot
	Phase        domain.SlotPhase
	RemainingSec int
}

// Snapshot is the aggregated view behind the status command.
type Snapshot struct {
	Profile      *domain.UserProfile
	Goal         *domain.Goal
	ActiveStep   *domain.SubTask
	RemainingSec int
	Slots        []SlotStatus
}

type StatusService interface {
	Snapshot(ctx context.Context, now time.Time) (*Snapshot, error)
	RecentRecords(ctx context.Context, limit int) ([]*domain.QuestRecord, error)
}
