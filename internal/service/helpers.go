package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/innerpath-app/innerpath/internal/db"
	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/engine"
	"github.com/innerpath-app/innerpath/internal/progression"
	"github.com/innerpath-app/innerpath/internal/repository"
)

// applyEvents folds engine events into the profile and appends one history
// record per event, inside the caller's transaction. Rewards advance the
// streak before the bonus is computed, so today's first success counts
// toward it.
func applyEvents(ctx context.Context, tx db.DBTX, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}
	profiles := repository.NewSQLiteProfileRepo(tx)
	records := repository.NewSQLiteRecordRepo(tx)

	profile, err := profiles.Get(ctx)
	if err != nil {
		return err
	}
	for _, ev := range events {
		if ev.Kind == engine.EventReward {
			progression.AdvanceStreak(profile, ev.Timestamp)
		}
		progression.Apply(profile, ev)
		progression.Touch(profile, ev.Timestamp)

		rec := progression.RecordFor(uuid.New().String(), ev)
		if err := records.Create(ctx, &rec); err != nil {
			return fmt.Errorf("recording %s: %w", ev.Reason, err)
		}
	}
	return profiles.Upsert(ctx, profile)
}

// loadGoalWithSteps attaches the ordered sub-tasks to a goal.
func loadGoalWithSteps(ctx context.Context, goals repository.GoalRepo, tasks repository.SubTaskRepo, id string) (*domain.Goal, error) {
	g, err := goals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	steps, err := tasks.ListByGoal(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.SubTasks = steps
	return g, nil
}
