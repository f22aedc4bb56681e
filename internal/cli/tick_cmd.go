package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
)

// The tick command exists for cron or scripting: it settles expired timers
// and slot reminders without opening the dashboard.
func newTickCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:    "tick",
		Short:  "Run one timer and timetable pass",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Tick.RunTick(context.Background(), time.Now())
			if err != nil {
				return err
			}

			if len(result.Events) == 0 && len(result.Notices) == 0 {
				fmt.Println(formatter.Dim("Nothing due."))
				return nil
			}
			for _, n := range result.Notices {
				fmt.Printf("%s %s\n", formatter.Bold(n.Title), n.Body)
			}
			return nil
		},
	}
}
