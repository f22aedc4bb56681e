package mentor

import (
	"fmt"
	"strings"

	"github.com/innerpath-app/innerpath/internal/domain"
)

const personaSystemPrompt = `You are Rudh-h, a warm, supportive, and reliable human mentor for the InnerPath journey.

VOICE AND TONE:
- Speak like a caring friend and coach, never like a machine.
- Be encouraging, gentle, and concrete. Celebrate small wins.
- DO NOT use technical or clinical words like "candidate", "node", "protocol", "system", "user".
- ALWAYS prefer warm words like "friend", "step", "plan", "journey", "rhythm".
- Keep answers short enough for a terminal.`

const breakdownSystemPrompt = personaSystemPrompt + `

Your task is to take the friend's goal and break it into 5 gentle, inspiring, and clear steps they can actually do. Each step gets a focused work duration in minutes.

You must output ONLY a JSON object with these exact fields:
{
  "category": "one of: learning, health, creativity, career, mindfulness, other",
  "subTasks": [
    {
      "title": "Short imperative step name",
      "description": "One sentence on what to do",
      "detailedExplanation": "2-3 warm sentences on how to approach it",
      "durationMinutes": 25
    }
  ]
}

RULES:
1. Produce between 3 and 10 steps. Five is the sweet spot.
2. Every durationMinutes must be a positive whole number, typically 15-60.
3. Steps must be ordered so each builds on the last.
4. Output ONLY the JSON object, no markdown fences, no text before or after.`

const chatSystemPrompt = personaSystemPrompt + `

The friend is chatting with you about their journey. Answer their message directly. Offer one concrete next step when it helps, but never lecture.

You must output ONLY a JSON object with these exact fields:
{
  "message": "Your reply, 2-4 sentences"
}`

const briefingSystemPrompt = personaSystemPrompt + `

Write a warm morning greeting for the friend, grounded in where they are on their journey. Mention their current rhythm or next step if one exists. 2-3 sentences.

You must output ONLY a JSON object with these exact fields:
{
  "message": "The greeting"
}`

const suggestSystemPrompt = personaSystemPrompt + `

Propose 4 new journeys the friend could start next, fitted to where they are now.

You must output ONLY a JSON object with these exact fields:
{
  "suggestions": [
    {
      "title": "Short goal name",
      "topic": "What it is about",
      "category": "one of: learning, health, creativity, career, mindfulness, other"
    }
  ]
}

RULES:
1. Exactly 4 suggestions.
2. Vary the categories; do not propose 4 of the same kind.
3. Output ONLY the JSON object, no markdown fences, no text before or after.`

// buildProfileContext renders the profile facts every mentor prompt shares.
func buildProfileContext(profile *domain.UserProfile) string {
	if profile == nil {
		return "The friend has not set up their profile yet."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Friend's name: %s\n", profile.Name)
	fmt.Fprintf(&b, "Level: %d\n", profile.Level)
	fmt.Fprintf(&b, "Spirit Points: %d\n", profile.XP)
	fmt.Fprintf(&b, "Current Rhythm: %d day streak\n", profile.Streak)
	if profile.RecoveryNeeded {
		b.WriteString("They recently stumbled and could use some extra gentleness.\n")
	}
	return b.String()
}

func buildBreakdownUserPrompt(goalTitle, notes string) string {
	var b strings.Builder
	b.WriteString("## Goal\n")
	b.WriteString(goalTitle)
	if strings.TrimSpace(notes) != "" {
		b.WriteString("\n\n## Notes from the friend\n")
		b.WriteString(notes)
	}
	return b.String()
}

func buildChatUserPrompt(profile *domain.UserProfile, conv *Conversation, message string) string {
	var b strings.Builder
	b.WriteString("## About the friend\n")
	b.WriteString(buildProfileContext(profile))
	if conv != nil && len(conv.Turns) > 0 {
		b.WriteString("\n## Previous conversation\n")
		for _, turn := range conv.Turns {
			b.WriteString(turn.Role)
			b.WriteString(": ")
			b.WriteString(turn.Content)
			b.WriteString("\n\n")
		}
	}
	b.WriteString("\n## Message\n")
	b.WriteString(message)
	return b.String()
}

func buildBriefingUserPrompt(profile *domain.UserProfile, goal *domain.Goal) string {
	var b strings.Builder
	b.WriteString("## About the friend\n")
	b.WriteString(buildProfileContext(profile))
	if goal != nil {
		fmt.Fprintf(&b, "\n## Active journey\n%s", goal.Title)
		if step := goal.ActiveStep(); step != nil {
			fmt.Fprintf(&b, "\nNext step: %s", step.Title)
		}
	}
	return b.String()
}

func buildSuggestUserPrompt(profile *domain.UserProfile) string {
	return "## About the friend\n" + buildProfileContext(profile)
}
