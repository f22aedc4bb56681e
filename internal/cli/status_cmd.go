package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your goal, timers, and today's plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			// A tick first, so expired timers and missed slots are
			// settled before the dashboard renders.
			if _, err := app.Tick.RunTick(ctx, now); err != nil {
				return err
			}

			snap, err := app.Status.Snapshot(ctx, now)
			if err != nil {
				return err
			}

			fmt.Println(formatter.FormatSnapshot(snap))
			return nil
		},
	}
}
