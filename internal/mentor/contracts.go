package mentor

// ConversationTurn is a single exchange in a mentor chat.
type ConversationTurn struct {
	Role    string // "User" or "Mentor"
	Content string
}

// Conversation holds multi-turn mentor chat state.
type Conversation struct {
	Turns []ConversationTurn
}

// BreakdownStep is one step of a generated goal breakdown.
type BreakdownStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Explanation string `json:"detailedExplanation"`
	DurationMin int    `json:"durationMinutes"`
}

// Breakdown is the structured decomposition of a goal into steps.
type Breakdown struct {
	Category string          `json:"category"`
	Steps    []BreakdownStep `json:"subTasks"`
}

// Suggestion is a proposed next goal for the user.
type Suggestion struct {
	Title    string `json:"title"`
	Topic    string `json:"topic"`
	Category string `json:"category"`
}

// Reply is the mentor's answer in a chat or briefing.
type Reply struct {
	Message string
	Source  string // "llm" or "deterministic"
}
