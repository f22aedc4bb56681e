package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/innerpath-app/innerpath/internal/db"
	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/engine"
	"github.com/innerpath-app/innerpath/internal/repository"
)

// maxBreakdownSteps bounds a goal decomposition; anything longer is noise
// rather than a path.
const maxBreakdownSteps = 10

type goalService struct {
	goals repository.GoalRepo
	tasks repository.SubTaskRepo
	uow   db.UnitOfWork
}

func NewGoalService(goals repository.GoalRepo, tasks repository.SubTaskRepo, uow db.UnitOfWork) GoalService {
	return &goalService{goals: goals, tasks: tasks, uow: uow}
}

func (s *goalService) Create(ctx context.Context, g *domain.Goal) error {
	if g.Title == "" {
		return fmt.Errorf("goal title is required")
	}
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	if g.Status == "" {
		g.Status = domain.GoalActive
	}
	return s.goals.Create(ctx, g)
}

func (s *goalService) Get(ctx context.Context, id string) (*domain.Goal, error) {
	return loadGoalWithSteps(ctx, s.goals, s.tasks, id)
}

func (s *goalService) Active(ctx context.Context) (*domain.Goal, error) {
	g, err := s.goals.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	return loadGoalWithSteps(ctx, s.goals, s.tasks, g.ID)
}

func (s *goalService) InstallBreakdown(ctx context.Context, goalID string, steps []StepInput) error {
	if len(steps) == 0 {
		return fmt.Errorf("breakdown has no steps")
	}
	if len(steps) > maxBreakdownSteps {
		return fmt.Errorf("breakdown has %d steps, at most %d allowed", len(steps), maxBreakdownSteps)
	}
	for i, step := range steps {
		if step.Title == "" {
			return fmt.Errorf("step %d has no title", i+1)
		}
		if step.DurationMin <= 0 {
			return fmt.Errorf("step %d (%q) has non-positive duration", i+1, step.Title)
		}
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txTasks := repository.NewSQLiteSubTaskRepo(tx)

		g, err := txGoals.GetByID(ctx, goalID)
		if err != nil {
			return err
		}
		existing, err := txTasks.ListByGoal(ctx, g.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("goal %q already has a breakdown", g.Title)
		}

		now := time.Now().UTC()
		for i, step := range steps {
			t := &domain.SubTask{
				ID:          uuid.New().String(),
				GoalID:      g.ID,
				OrderIndex:  i,
				Title:       step.Title,
				Description: step.Description,
				Explanation: step.Explanation,
				DurationSec: step.DurationMin * 60,
				TimeLeftSec: step.DurationMin * 60,
				Status:      domain.TaskPending,
				ResetMode:   domain.ResetManual,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := txTasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating step %q: %w", step.Title, err)
			}
		}

		g.CheckpointIndex = 0
		g.UpdatedAt = now
		return txGoals.Update(ctx, g)
	})
}

func (s *goalService) AddStep(ctx context.Context, goalID string, step StepInput) error {
	if step.Title == "" {
		return fmt.Errorf("step title is required")
	}
	if step.DurationMin <= 0 {
		return fmt.Errorf("step %q has non-positive duration", step.Title)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txTasks := repository.NewSQLiteSubTaskRepo(tx)

		g, err := txGoals.GetByID(ctx, goalID)
		if err != nil {
			return err
		}
		existing, err := txTasks.ListByGoal(ctx, g.ID)
		if err != nil {
			return err
		}
		if len(existing) >= maxBreakdownSteps {
			return fmt.Errorf("goal %q already has %d steps, at most %d allowed", g.Title, len(existing), maxBreakdownSteps)
		}

		now := time.Now().UTC()
		t := &domain.SubTask{
			ID:          uuid.New().String(),
			GoalID:      g.ID,
			OrderIndex:  len(existing),
			Title:       step.Title,
			Description: step.Description,
			Explanation: step.Explanation,
			DurationSec: step.DurationMin * 60,
			TimeLeftSec: step.DurationMin * 60,
			Status:      domain.TaskPending,
			ResetMode:   domain.ResetManual,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := txTasks.Create(ctx, t); err != nil {
			return err
		}

		g.UpdatedAt = now
		return txGoals.Update(ctx, g)
	})
}

func (s *goalService) StartStep(ctx context.Context, goalID string, index int, opts engine.StartOptions) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txTasks := repository.NewSQLiteSubTaskRepo(tx)

		g, err := loadGoalWithSteps(ctx, txGoals, txTasks, goalID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := engine.StartStep(g, index, now, opts); err != nil {
			return err
		}
		if err := txTasks.Update(ctx, g.SubTasks[index]); err != nil {
			return err
		}
		return txGoals.Update(ctx, g)
	})
}

func (s *goalService) CompleteStep(ctx context.Context, goalID string, index int, now time.Time) (*engine.Event, error) {
	var event *engine.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txTasks := repository.NewSQLiteSubTaskRepo(tx)

		g, err := loadGoalWithSteps(ctx, txGoals, txTasks, goalID)
		if err != nil {
			return err
		}
		ev, err := engine.CompleteStep(g, index, now)
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
		event = ev

		if err := txTasks.Update(ctx, g.SubTasks[index]); err != nil {
			return err
		}
		if err := txGoals.Update(ctx, g); err != nil {
			return err
		}
		return applyEvents(ctx, tx, []engine.Event{*ev})
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *goalService) SetResetMode(ctx context.Context, goalID string, index int, mode domain.ResetMode) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txTasks := repository.NewSQLiteSubTaskRepo(tx)

		g, err := loadGoalWithSteps(ctx, txGoals, txTasks, goalID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := engine.SetResetMode(g, index, mode, now); err != nil {
			return err
		}
		return txTasks.Update(ctx, g.SubTasks[index])
	})
}

func (s *goalService) Finish(ctx context.Context, goalID string) (*GoalSummary, error) {
	var summary *GoalSummary
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txTasks := repository.NewSQLiteSubTaskRepo(tx)

		g, err := loadGoalWithSteps(ctx, txGoals, txTasks, goalID)
		if err != nil {
			return err
		}
		if g.Status == domain.GoalCompleted {
			return fmt.Errorf("goal %q is already finished", g.Title)
		}

		now := time.Now().UTC()
		g.Finish(now)

		var focusMin int
		for _, task := range g.SubTasks {
			if task.Completed() {
				focusMin += task.DurationSec / 60
			}
		}
		summary = &GoalSummary{
			Title:          g.Title,
			CompletedSteps: g.CompletedSteps(),
			TotalSteps:     len(g.SubTasks),
			FocusMin:       focusMin,
			FinishedAt:     now,
		}
		return txGoals.Update(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
