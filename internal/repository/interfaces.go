package repository

import (
	"context"
	"time"

	"github.com/innerpath-app/innerpath/internal/domain"
)

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	// GetActive returns the single active goal, or ErrNotFound when none exists.
	GetActive(ctx context.Context) (*domain.Goal, error)
	List(ctx context.Context) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

type SubTaskRepo interface {
	Create(ctx context.Context, t *domain.SubTask) error
	GetByID(ctx context.Context, id string) (*domain.SubTask, error)
	ListByGoal(ctx context.Context, goalID string) ([]*domain.SubTask, error)
	Update(ctx context.Context, t *domain.SubTask) error
	DeleteByGoal(ctx context.Context, goalID string) error
}

type SlotRepo interface {
	Create(ctx context.Context, s *domain.TimetableSlot) error
	GetByID(ctx context.Context, id string) (*domain.TimetableSlot, error)
	List(ctx context.Context) ([]*domain.TimetableSlot, error)
	Update(ctx context.Context, s *domain.TimetableSlot) error
	// ResetDailyFlags clears completion and one-shot flags on every slot,
	// run once at each day boundary.
	ResetDailyFlags(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

type RecordRepo interface {
	Create(ctx context.Context, rec *domain.QuestRecord) error
	ListRecent(ctx context.Context, limit int) ([]*domain.QuestRecord, error)
	ListSince(ctx context.Context, since time.Time) ([]*domain.QuestRecord, error)
}
