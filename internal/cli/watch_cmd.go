package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
	"github.com/innerpath-app/innerpath/internal/clock"
)

const watchInterval = 30 * time.Second

// The watch command keeps a tick loop running in the foreground so timer
// expiries and slot reminders fire while you work. Ctrl+C stops it.
func newWatchCmd(app *App) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run reminders in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Println(formatter.Dim("Watching your timers and timetable. Ctrl+C to stop."))

			clock.Tick(ctx, clock.SystemClock{}, interval, func(now time.Time) {
				if _, err := app.Tick.RunTick(ctx, now); err != nil {
					fmt.Println(formatter.StyleBad.Render("tick failed: " + err.Error()))
				}
			})
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", watchInterval, "How often to check")

	return cmd
}
