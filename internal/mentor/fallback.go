package mentor

import (
	"fmt"

	"github.com/innerpath-app/innerpath/internal/domain"
)

// briefingFallback is the greeting used when the mentor is unreachable.
const briefingFallback = "Every small step counts on your journey. Let's make today meaningful."

// DeterministicBriefing returns the canned morning greeting.
func DeterministicBriefing() *Reply {
	return &Reply{Message: briefingFallback, Source: "deterministic"}
}

// DeterministicChatReply builds an encouraging reply without the LLM.
func DeterministicChatReply(profile *domain.UserProfile) *Reply {
	msg := "I'm here with you, friend. Pick the next small step on your plan and give it your full attention."
	switch {
	case profile == nil:
	case profile.RecoveryNeeded:
		msg = "A stumble is part of every journey, friend. Take one gentle step today and your rhythm will come back."
	case profile.Streak >= 7:
		msg = fmt.Sprintf("Your rhythm is strong, friend: %d days and counting. Keep the next step small and steady.", profile.Streak)
	}
	return &Reply{Message: msg, Source: "deterministic"}
}

// DeterministicSuggestions returns canned journey ideas when the LLM is
// unreachable. The list leans gentler when the user needs recovery.
func DeterministicSuggestions(profile *domain.UserProfile) []Suggestion {
	if profile != nil && profile.RecoveryNeeded {
		return []Suggestion{
			{Title: "Ten-minute morning walk", Topic: "Gentle movement to restart your rhythm", Category: "health"},
			{Title: "Three-line journal", Topic: "Write three lines about today", Category: "mindfulness"},
			{Title: "Tidy one small space", Topic: "Reset one corner of your desk or room", Category: "other"},
			{Title: "Read ten pages", Topic: "Ease back in with a book you enjoy", Category: "learning"},
		}
	}
	return []Suggestion{
		{Title: "Learn a new skill basics", Topic: "Pick a skill and cover its fundamentals", Category: "learning"},
		{Title: "Build a daily exercise habit", Topic: "Twenty minutes of movement each day", Category: "health"},
		{Title: "Start a creative side project", Topic: "Make something small and finish it", Category: "creativity"},
		{Title: "Daily mindfulness practice", Topic: "Five quiet minutes each morning", Category: "mindfulness"},
	}
}
