package domain

import (
	"fmt"
	"time"
)

// TimetableSlot is a fixed time-of-day interval on the daily plan,
// independent of the goal timer system. Start and end are stored as
// minute-of-day so classification is a pure comparison. XPDeducted and
// ReminderSent are one-shot flags: once set they never clear, which keeps
// each slot's reminder and penalty to at most one firing per day.
type TimetableSlot struct {
	ID       string
	StartMin int // minute of day, 0..1439
	EndMin   int
	TaskName string

	Completed    bool
	XPDeducted   bool
	ReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlannedMin returns the slot's planned length in minutes.
func (s *TimetableSlot) PlannedMin() int {
	return s.EndMin - s.StartMin
}

// StartClock and EndClock format the interval bounds as HH:mm.
func (s *TimetableSlot) StartClock() string { return FormatClock(s.StartMin) }
func (s *TimetableSlot) EndClock() string   { return FormatClock(s.EndMin) }

// ParseClock converts an HH:mm string into a minute-of-day value.
func ParseClock(hhmm string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm", hhmm)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", hhmm)
	}
	return h*60 + m, nil
}

// FormatClock renders a minute-of-day value as HH:mm.
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// MinuteOfDay extracts the minute-of-day component of a wall-clock instant.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
