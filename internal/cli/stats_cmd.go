package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
)

func newStatsCmd(app *App) *cobra.Command {
	var history int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progression and quest history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			profile, err := app.Profile.Get(ctx)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatStats(profile))

			records, err := app.Status.RecentRecords(ctx, history)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatRecords(records))
			return nil
		},
	}

	cmd.Flags().IntVar(&history, "history", 20, "Number of history entries to show")

	return cmd
}
