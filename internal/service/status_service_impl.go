package service

import (
	"context"
	"errors"
	"time"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/engine"
	"github.com/innerpath-app/innerpath/internal/repository"
)

type statusService struct {
	goals    repository.GoalRepo
	tasks    repository.SubTaskRepo
	slots    repository.SlotRepo
	profiles repository.ProfileRepo
	records  repository.RecordRepo
}

func NewStatusService(
	goals repository.GoalRepo,
	tasks repository.SubTaskRepo,
	slots repository.SlotRepo,
	profiles repository.ProfileRepo,
	records repository.RecordRepo,
) StatusService {
	return &statusService{goals: goals, tasks: tasks, slots: slots, profiles: profiles, records: records}
}

func (s *statusService) Snapshot(ctx context.Context, now time.Time) (*Snapshot, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Profile: profile}

	goal, err := s.goals.GetActive(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// no goal underway; the snapshot still carries profile and slots
	case err != nil:
		return nil, err
	default:
		goal.SubTasks, err = s.tasks.ListByGoal(ctx, goal.ID)
		if err != nil {
			return nil, err
		}
		snap.Goal = goal
		if task := goal.ActiveStep(); task != nil {
			snap.ActiveStep = task
			snap.RemainingSec = engine.Derive(task, now)
		}
	}

	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, slot := range slots {
		phase := engine.ClassifySlot(slot, now)
		status := SlotStatus{Slot: slot, Phase: phase}
		if phase == domain.SlotLive {
			status.RemainingSec = engine.SlotRemainingSec(slot, now)
		}
		snap.Slots = append(snap.Slots, status)
	}
	return snap, nil
}

func (s *statusService) RecentRecords(ctx context.Context, limit int) ([]*domain.QuestRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.records.ListRecent(ctx, limit)
}
