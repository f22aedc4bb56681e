package service

import (
	"context"
	"errors"
	"time"

	"github.com/innerpath-app/innerpath/internal/db"
	"github.com/innerpath-app/innerpath/internal/engine"
	"github.com/innerpath-app/innerpath/internal/notify"
	"github.com/innerpath-app/innerpath/internal/progression"
	"github.com/innerpath-app/innerpath/internal/repository"
)

type tickService struct {
	uow      db.UnitOfWork
	notifier notify.Notifier
	observer UseCaseObserver
}

func NewTickService(uow db.UnitOfWork, notifier notify.Notifier, observer UseCaseObserver) TickService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &tickService{uow: uow, notifier: notifier, observer: observer}
}

// RunTick is the single writer for timer-driven state: it advances the
// active goal's step and every slot to now, then persists mutations,
// profile changes, and history records in one transaction. Running it
// twice with the same instant is a no-op the second time.
func (s *tickService) RunTick(ctx context.Context, now time.Time) (engine.TickResult, error) {
	started := time.Now()
	var result engine.TickResult

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txTasks := repository.NewSQLiteSubTaskRepo(tx)
		txSlots := repository.NewSQLiteSlotRepo(tx)
		txProfiles := repository.NewSQLiteProfileRepo(tx)

		if err := rolloverSlots(ctx, txSlots, txProfiles, now); err != nil {
			return err
		}

		goal, err := txGoals.GetActive(ctx)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			goal = nil
		case err != nil:
			return err
		default:
			goal.SubTasks, err = txTasks.ListByGoal(ctx, goal.ID)
			if err != nil {
				return err
			}
		}

		if goal != nil {
			goalResult := engine.TickGoal(goal, now)
			if goalResult.Changed {
				task := goal.ActiveStep()
				if err := txTasks.Update(ctx, task); err != nil {
					return err
				}
				if err := txGoals.Update(ctx, goal); err != nil {
					return err
				}
			}
			result.Merge(goalResult)
		}

		slots, err := txSlots.List(ctx)
		if err != nil {
			return err
		}
		slotResult := engine.TickSlots(slots, now)
		if slotResult.Changed {
			for _, slot := range slots {
				if err := txSlots.Update(ctx, slot); err != nil {
					return err
				}
			}
		}
		result.Merge(slotResult)

		return applyEvents(ctx, tx, result.Events)
	})

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "tick",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields: map[string]any{
			"events":  len(result.Events),
			"notices": len(result.Notices),
		},
	})
	if err != nil {
		return engine.TickResult{}, err
	}

	for _, notice := range result.Notices {
		s.notifier.Notify(notice.Title, notice.Body)
	}
	return result, nil
}

// rolloverSlots clears slot completion and one-shot flags the first time a
// tick lands on a new calendar day. The profile's last-active stamp is the
// day marker, so the reset survives process restarts.
func rolloverSlots(ctx context.Context, slots repository.SlotRepo, profiles repository.ProfileRepo, now time.Time) error {
	profile, err := profiles.Get(ctx)
	if err != nil {
		return err
	}
	if profile.LastActive == nil || sameDay(*profile.LastActive, now) {
		return nil
	}
	if err := slots.ResetDailyFlags(ctx); err != nil {
		return err
	}
	progression.Touch(profile, now)
	return profiles.Upsert(ctx, profile)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
