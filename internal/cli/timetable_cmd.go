package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
	"github.com/innerpath-app/innerpath/internal/engine"
	"github.com/innerpath-app/innerpath/internal/service"
)

// resolveSlotID matches a slot by ID prefix or exact task name.
func resolveSlotID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("slot ID or task name is required")
	}

	slots, err := app.Timetable.List(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range slots {
		if strings.EqualFold(s.TaskName, input) {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range slots {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("slot not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("slot ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newTimetableCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timetable",
		Aliases: []string{"tt"},
		Short:   "Manage your daily timetable",
	}

	cmd.AddCommand(
		newTimetableAddCmd(app),
		newTimetableListCmd(app),
		newTimetableToggleCmd(app),
		newTimetableRemoveCmd(app),
	)

	return cmd
}

func newTimetableAddCmd(app *App) *cobra.Command {
	var task, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a daily slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := app.Timetable.Add(context.Background(), task, start, end)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (%s–%s)\n", slot.TaskName, slot.StartClock(), slot.EndClock())
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Task name")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:mm)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:mm)")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTimetableListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show today's slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := app.Timetable.List(context.Background())
			if err != nil {
				return err
			}
			if len(slots) == 0 {
				fmt.Println(formatter.Dim("No slots yet. Add one with `innerpath timetable add`."))
				return nil
			}

			now := time.Now()
			statuses := make([]service.SlotStatus, 0, len(slots))
			for _, s := range slots {
				statuses = append(statuses, service.SlotStatus{
					Slot:         s,
					Phase:        engine.ClassifySlot(s, now),
					RemainingSec: engine.SlotRemainingSec(s, now),
				})
			}
			fmt.Print(formatter.FormatSlots(statuses))
			return nil
		},
	}
}

func newTimetableToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <slot>",
		Aliases: []string{"done"},
		Short:   "Mark a slot done (or undone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSlotID(ctx, app, args[0])
			if err != nil {
				return err
			}

			ev, err := app.Timetable.Toggle(ctx, id, time.Now())

			var notStarted *engine.SlotNotStartedError
			if errors.As(err, &notStarted) {
				fmt.Println(formatter.Dim(notStarted.Error()))
				return nil
			}
			if err != nil {
				return err
			}

			switch {
			case ev == nil:
				fmt.Println("Slot updated.")
			case ev.Magnitude > 0:
				fmt.Println(formatter.StyleGood.Render(fmt.Sprintf("Done! +%d XP", ev.Magnitude)))
			default:
				fmt.Println(formatter.StyleWarn.Render("Marked done, but the window had already passed."))
			}
			return nil
		},
	}
}

func newTimetableRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <slot>",
		Aliases: []string{"rm"},
		Short:   "Remove a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSlotID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Timetable.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Println("Slot removed.")
			return nil
		},
	}
}
