package domain

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskActive    TaskStatus = "active"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

type ResetMode string

const (
	ResetManual ResetMode = "manual"
	ResetAuto   ResetMode = "auto"
	ResetDaily  ResetMode = "daily"
)

// ValidResetModes is the canonical set of accepted reset mode strings.
var ValidResetModes = map[string]bool{
	"manual": true, "auto": true, "daily": true,
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

// SlotPhase is derived from wall-clock time, never stored.
type SlotPhase string

const (
	SlotUpcoming SlotPhase = "upcoming"
	SlotLive     SlotPhase = "live"
	SlotExpired  SlotPhase = "expired"
)

type RecordOutcome string

const (
	OutcomeCompleted RecordOutcome = "completed"
	OutcomeFailed    RecordOutcome = "failed"
	OutcomeMissed    RecordOutcome = "missed"
	OutcomeLate      RecordOutcome = "late"
)

type Theme string

const (
	ThemeEmerald Theme = "emerald"
	ThemeViolet  Theme = "violet"
	ThemeSteel   Theme = "steel"
)
