package engine

import (
	"time"

	"github.com/innerpath-app/innerpath/internal/domain"
)

// ClassifySlot places a slot relative to the current time of day. Status
// is always recomputed, never stored: [start, end) is live, before is
// upcoming, at or after end is expired.
func ClassifySlot(slot *domain.TimetableSlot, now time.Time) domain.SlotPhase {
	nowMin := domain.MinuteOfDay(now)
	switch {
	case nowMin < slot.StartMin:
		return domain.SlotUpcoming
	case nowMin < slot.EndMin:
		return domain.SlotLive
	default:
		return domain.SlotExpired
	}
}

// SlotRemainingSec returns the seconds left in a live slot, 0 otherwise.
func SlotRemainingSec(slot *domain.TimetableSlot, now time.Time) int {
	if ClassifySlot(slot, now) != domain.SlotLive {
		return 0
	}
	nowSec := domain.MinuteOfDay(now)*60 + now.Second()
	return slot.EndMin*60 - nowSec
}

// TickSlots evaluates every slot's at-most-once side effects for one tick:
// a reminder exactly five minutes before start, and a silent penalty once
// the slot ends without being completed. Both are guarded by flags that
// never clear, so repeated ticks through the trigger window fire nothing
// further. The reminder requires the exact boundary minute: a scheduler
// coarser than one minute may skip it, which is acceptable here.
func TickSlots(slots []*domain.TimetableSlot, now time.Time) TickResult {
	var result TickResult
	nowMin := domain.MinuteOfDay(now)

	for _, slot := range slots {
		if !slot.ReminderSent && !slot.Completed && nowMin == slot.StartMin-ReminderLeadMin {
			slot.ReminderSent = true
			slot.UpdatedAt = now
			result.Changed = true
			result.Notices = append(result.Notices, Notice{
				Title: "Almost Time",
				Body:  "Your step \"" + slot.TaskName + "\" is starting in five minutes. Take a deep breath.",
			})
		}

		if nowMin >= slot.EndMin && !slot.Completed && !slot.XPDeducted {
			slot.XPDeducted = true
			slot.UpdatedAt = now
			result.Changed = true
			result.Events = append(result.Events, Event{
				Kind:       EventPenalty,
				Magnitude:  PenaltySlotMissed,
				Reason:     ReasonSlotMissed,
				TaskName:   slot.TaskName,
				Timestamp:  now,
				PlannedMin: slot.PlannedMin(),
			})
		}
	}
	return result
}

// ToggleSlot acknowledges a slot. A live slot completes with the full
// reward; an expired slot completes late with a zero reward and no extra
// penalty (the auto-penalty already ran or will run); an upcoming slot is
// rejected, and a completed slot is a no-op.
func ToggleSlot(slot *domain.TimetableSlot, now time.Time) (*Event, error) {
	if slot.Completed {
		return nil, nil
	}
	switch ClassifySlot(slot, now) {
	case domain.SlotLive:
		slot.Completed = true
		slot.UpdatedAt = now
		return &Event{
			Kind:       EventReward,
			Magnitude:  RewardSlotOnTime,
			Reason:     ReasonSlotCompleted,
			TaskName:   slot.TaskName,
			Timestamp:  now,
			PlannedMin: slot.PlannedMin(),
		}, nil
	case domain.SlotExpired:
		slot.Completed = true
		slot.UpdatedAt = now
		return &Event{
			Kind:       EventReward,
			Magnitude:  RewardSlotLate,
			Reason:     ReasonSlotLate,
			TaskName:   slot.TaskName,
			Timestamp:  now,
			PlannedMin: slot.PlannedMin(),
		}, nil
	default:
		return nil, errSlotNotStarted(slot)
	}
}

func errSlotNotStarted(slot *domain.TimetableSlot) error {
	return &SlotNotStartedError{TaskName: slot.TaskName, StartsAt: slot.StartClock()}
}

// SlotNotStartedError rejects completion of a slot before its window opens.
type SlotNotStartedError struct {
	TaskName string
	StartsAt string
}

func (e *SlotNotStartedError) Error() string {
	return "slot \"" + e.TaskName + "\" has not started yet (starts at " + e.StartsAt + ")"
}
