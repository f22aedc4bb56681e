package formatter

import (
	"fmt"
	"strings"

	"github.com/innerpath-app/innerpath/internal/mentor"
)

// FormatReply renders a mentor message, dimming the attribution when the
// reply came from the deterministic fallback.
func FormatReply(reply *mentor.Reply) string {
	var b strings.Builder
	b.WriteString(StyleAccent.Render("Rudh-h: "))
	b.WriteString(StyleFg.Render(reply.Message))
	if reply.Source == "deterministic" {
		b.WriteString("\n" + Dim("(offline reply — start Ollama for the full mentor)"))
	}
	return b.String()
}

// FormatBreakdown renders a generated goal breakdown for review before
// it is installed.
func FormatBreakdown(bd *mentor.Breakdown) string {
	var b strings.Builder
	b.WriteString(Header("Suggested Steps"))
	b.WriteString("\n")

	for i, step := range bd.Steps {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			StyleAccent.Render(fmt.Sprintf("%d.", i+1)),
			Bold(step.Title),
			Dim(FormatMinutes(step.DurationMin))))
		if step.Description != "" {
			b.WriteString("   " + StyleFg.Render(step.Description) + "\n")
		}
		if step.Explanation != "" {
			b.WriteString("   " + Dim(step.Explanation) + "\n")
		}
	}

	if bd.Category != "" {
		b.WriteString("\n" + Dim("Category: "+bd.Category))
	}
	return b.String()
}

// FormatSuggestions renders proposed next journeys as a numbered list.
func FormatSuggestions(suggestions []mentor.Suggestion) string {
	var b strings.Builder
	b.WriteString(Header("Journey Ideas"))
	b.WriteString("\n")

	for i, s := range suggestions {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			StyleAccent.Render(fmt.Sprintf("%d.", i+1)),
			Bold(s.Title),
			Dim("["+s.Category+"]")))
		if s.Topic != "" {
			b.WriteString("   " + StyleFg.Render(s.Topic) + "\n")
		}
	}
	return b.String()
}
