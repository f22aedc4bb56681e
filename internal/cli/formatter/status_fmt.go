package formatter

import (
	"fmt"
	"strings"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/service"
)

const goalProgressBarWidth = 14

// FormatSnapshot formats the full status dashboard: profile line, active
// goal with step progress and countdown, and today's timetable.
func FormatSnapshot(snap *service.Snapshot) string {
	var b strings.Builder

	b.WriteString(formatProfileLine(snap.Profile))
	b.WriteString("\n\n")
	b.WriteString(formatGoalSection(snap))

	if len(snap.Slots) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Header("Today's Plan"))
		b.WriteString("\n")
		b.WriteString(FormatSlots(snap.Slots))
	}

	return RenderBox("InnerPath", b.String())
}

func formatProfileLine(p *domain.UserProfile) string {
	if p == nil {
		return Dim("No profile yet. Run `innerpath init` to begin.")
	}

	parts := []string{
		Bold(p.Name),
		StyleAccent.Render(fmt.Sprintf("Lv %d", p.Level)),
		StyleFg.Render(fmt.Sprintf("%d XP", p.XP)),
	}
	if p.Streak > 0 {
		parts = append(parts, StyleWarn.Render(fmt.Sprintf("%d day streak", p.Streak)))
	}
	line := strings.Join(parts, Dim("  ·  "))

	if p.RecoveryNeeded {
		line += "\n" + StyleWarn.Render("Recovery day: one small win brings your rhythm back.")
	}
	return line
}

func formatGoalSection(snap *service.Snapshot) string {
	if snap.Goal == nil {
		return Dim("No active goal. Start one with `innerpath goal add`.")
	}

	var b strings.Builder
	g := snap.Goal

	b.WriteString(Header("Goal"))
	b.WriteString("\n")
	b.WriteString(Bold(g.Title))
	if g.Category != "" {
		b.WriteString("  " + Dim("["+g.Category+"]"))
	}
	b.WriteString("\n")

	total := len(g.SubTasks)
	if total == 0 {
		b.WriteString(Dim("Awaiting breakdown. Run `innerpath goal breakdown` or add steps by hand."))
		return b.String()
	}

	done := g.CompletedSteps()
	pct := float64(done) / float64(total)
	b.WriteString(fmt.Sprintf("%s  %s\n", RenderProgress(pct, goalProgressBarWidth), Dim(fmt.Sprintf("%d/%d steps", done, total))))

	if snap.ActiveStep != nil {
		b.WriteString("\n")
		b.WriteString(StyleAccent.Render("▶ " + snap.ActiveStep.Title))
		if snap.ActiveStep.Status == domain.TaskActive {
			b.WriteString("  " + Bold(FormatCountdown(snap.RemainingSec)) + Dim(" left"))
		}
	}

	return b.String()
}

// FormatSlots renders the timetable as a table with phase indicators.
func FormatSlots(slots []service.SlotStatus) string {
	headers := []string{"TIME", "TASK", "STATUS"}
	rows := make([][]string, 0, len(slots))

	for _, s := range slots {
		window := fmt.Sprintf("%s–%s", s.Slot.StartClock(), s.Slot.EndClock())

		status := PhaseIndicator(s.Phase)
		switch {
		case s.Slot.Completed:
			status = StyleGood.Render("✔ DONE")
		case s.Phase == domain.SlotLive:
			status += Dim(fmt.Sprintf("  %s left", FormatCountdown(s.RemainingSec)))
		}

		rows = append(rows, []string{
			StyleFg.Render(window),
			Bold(s.Slot.TaskName),
			status,
		})
	}

	return RenderTable(headers, rows)
}
