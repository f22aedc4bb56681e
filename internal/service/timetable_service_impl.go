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

type timetableService struct {
	slots repository.SlotRepo
	uow   db.UnitOfWork
}

func NewTimetableService(slots repository.SlotRepo, uow db.UnitOfWork) TimetableService {
	return &timetableService{slots: slots, uow: uow}
}

func (s *timetableService) Add(ctx context.Context, taskName, start, end string) (*domain.TimetableSlot, error) {
	if taskName == "" {
		return nil, fmt.Errorf("slot task name is required")
	}
	startMin, err := domain.ParseClock(start)
	if err != nil {
		return nil, err
	}
	endMin, err := domain.ParseClock(end)
	if err != nil {
		return nil, err
	}
	if endMin <= startMin {
		return nil, fmt.Errorf("slot end %s must come after start %s", end, start)
	}

	now := time.Now().UTC()
	slot := &domain.TimetableSlot{
		ID:        uuid.New().String(),
		StartMin:  startMin,
		EndMin:    endMin,
		TaskName:  taskName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *timetableService) List(ctx context.Context) ([]*domain.TimetableSlot, error) {
	return s.slots.List(ctx)
}

func (s *timetableService) Toggle(ctx context.Context, id string, now time.Time) (*engine.Event, error) {
	var event *engine.Event
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSlots := repository.NewSQLiteSlotRepo(tx)

		slot, err := txSlots.GetByID(ctx, id)
		if err != nil {
			return err
		}
		ev, err := engine.ToggleSlot(slot, now)
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
		event = ev

		if err := txSlots.Update(ctx, slot); err != nil {
			return err
		}
		return applyEvents(ctx, tx, []engine.Event{*ev})
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *timetableService) Remove(ctx context.Context, id string) error {
	return s.slots.Delete(ctx, id)
}
