package formatter

import (
	"fmt"
	"strings"

	"github.com/innerpath-app/innerpath/internal/domain"
)

// FormatStats renders the progression overview: XP, level, streak, badges
// and lifetime focus minutes.
func FormatStats(p *domain.UserProfile) string {
	if p == nil {
		return Dim("No profile yet. Run `innerpath init` to begin.")
	}

	var b strings.Builder
	b.WriteString(Header("Progress"))
	b.WriteString("\n")

	rows := [][]string{
		{Dim("Level"), Bold(fmt.Sprintf("%d", p.Level))},
		{Dim("XP"), StyleAccent.Render(fmt.Sprintf("%d", p.XP))},
		{Dim("Streak"), StyleWarn.Render(fmt.Sprintf("%d days", p.Streak))},
		{Dim("Focus time"), StyleFg.Render(FormatMinutes(p.TotalFocusMin))},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n", r[0], r[1]))
	}

	b.WriteString("\n")
	b.WriteString(Header("Badges"))
	b.WriteString("\n")
	if len(p.Badges) == 0 {
		b.WriteString(Dim("None yet. Keep walking your path."))
	} else {
		for _, id := range p.Badges {
			name := id
			if badge, ok := domain.BadgeByID(id); ok {
				name = badge.Name
			}
			b.WriteString(StyleGood.Render("★ " + name))
			b.WriteString("\n")
		}
	}

	return RenderBox("Stats", b.String())
}

// FormatRecords renders recent quest history as a table.
func FormatRecords(records []*domain.QuestRecord) string {
	if len(records) == 0 {
		return Dim("No history yet.")
	}

	headers := []string{"WHEN", "TASK", "OUTCOME", "XP"}
	rows := make([][]string, 0, len(records))

	for _, r := range records {
		xp := StyleGood.Render(fmt.Sprintf("+%d", r.XPChange))
		if r.XPChange < 0 {
			xp = StyleBad.Render(fmt.Sprintf("%d", r.XPChange))
		} else if r.XPChange == 0 {
			xp = Dim("0")
		}

		rows = append(rows, []string{
			Dim(r.Timestamp.Local().Format("Jan 02 15:04")),
			StyleFg.Render(r.TaskName),
			outcomeLabel(r.Outcome),
			xp,
		})
	}

	return RenderTable(headers, rows)
}

func outcomeLabel(o domain.RecordOutcome) string {
	switch o {
	case domain.OutcomeCompleted:
		return StyleGood.Render("completed")
	case domain.OutcomeFailed:
		return StyleBad.Render("failed")
	case domain.OutcomeMissed:
		return StyleBad.Render("missed")
	case domain.OutcomeLate:
		return StyleWarn.Render("late")
	default:
		return Dim(string(o))
	}
}
