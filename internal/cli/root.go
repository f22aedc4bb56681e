package cli

import (
	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/mentor"
	"github.com/innerpath-app/innerpath/internal/notify"
	"github.com/innerpath-app/innerpath/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Goals     service.GoalService
	Timetable service.TimetableService
	Tick      service.TickService
	Profile   service.ProfileService
	Status    service.StatusService

	// Mentor services are nil when the LLM is disabled; commands fall
	// back to their deterministic behavior or report the mentor is off.
	Breakdown mentor.BreakdownService
	Chat      mentor.ChatService
	Briefing  mentor.BriefingService
	Suggest   mentor.SuggestService

	Notifier      notify.Notifier
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "innerpath" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "innerpath",
		Short: "Personal growth companion with timers, timetable, and mentor",
	}

	root.AddCommand(
		newInitCmd(app),
		newGoalCmd(app),
		newStepCmd(app),
		newTimetableCmd(app),
		newStatusCmd(app),
		newStatsCmd(app),
		newTickCmd(app),
		newWatchCmd(app),
		newFocusCmd(app),
		newMentorCmd(app),
	)

	return root
}
