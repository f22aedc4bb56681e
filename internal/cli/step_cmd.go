package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/engine"
	"github.com/innerpath-app/innerpath/internal/service"
)

// Duration presets for manual steps, in minutes.
var stepPresets = map[string]int{
	"short": 25,
	"focus": 30,
	"deep":  60,
}

func newStepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Work the steps of your goal",
	}

	cmd.AddCommand(
		newStepAddCmd(app),
		newStepStartCmd(app),
		newStepDoneCmd(app),
		newStepModeCmd(app),
	)

	return cmd
}

func formatStepLine(index int, step *domain.SubTask, current bool, now time.Time) string {
	marker := "  "
	if current {
		marker = formatter.StyleAccent.Render("▶ ")
	}

	var status string
	switch step.Status {
	case domain.TaskCompleted:
		status = formatter.StyleGood.Render("✔")
	case domain.TaskFailed:
		status = formatter.StyleBad.Render("✘")
	case domain.TaskActive:
		status = formatter.StyleWarn.Render(formatter.FormatCountdown(engine.Derive(step, now)))
	default:
		status = formatter.Dim(formatter.FormatMinutes(step.DurationSec / 60))
	}

	return fmt.Sprintf("%s%d. %s  %s", marker, index+1, step.Title, status)
}

func newStepAddCmd(app *App) *cobra.Command {
	var title, description, preset string
	var minutes int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a step to the active goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goal, err := activeGoal(ctx, app)
			if err != nil {
				return err
			}

			dur := minutes
			if preset != "" {
				p, ok := stepPresets[preset]
				if !ok {
					return fmt.Errorf("unknown preset %q (use short, focus, or deep)", preset)
				}
				dur = p
			}

			err = app.Goals.AddStep(ctx, goal.ID, service.StepInput{
				Title:       title,
				Description: description,
				DurationMin: dur,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added step: %s (%s)\n", title, formatter.FormatMinutes(dur))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Step title")
	cmd.Flags().StringVar(&description, "desc", "", "What to do")
	cmd.Flags().IntVar(&minutes, "minutes", 25, "Focus duration in minutes")
	cmd.Flags().StringVar(&preset, "preset", "", "Duration preset: short (25m), focus (30m), deep (60m)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// resolveStepIndex turns an optional 1-based positional arg into a 0-based
// index, defaulting to the goal's checkpoint.
func resolveStepIndex(goal *domain.Goal, args []string) (int, error) {
	if len(args) == 0 {
		return goal.CheckpointIndex, nil
	}
	var n int
	if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 1 {
		return 0, fmt.Errorf("invalid step number %q", args[0])
	}
	return n - 1, nil
}

func newStepStartCmd(app *App) *cobra.Command {
	var minutes int
	var mode string

	cmd := &cobra.Command{
		Use:   "start [step]",
		Short: "Start a step's timer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goal, err := activeGoal(ctx, app)
			if err != nil {
				return err
			}
			index, err := resolveStepIndex(goal, args)
			if err != nil {
				return err
			}

			opts := engine.StartOptions{}
			if cmd.Flags().Changed("minutes") {
				if minutes <= 0 {
					return fmt.Errorf("minutes must be positive")
				}
				opts.DurationSec = minutes * 60
			}
			if mode != "" {
				if !domain.ValidResetModes[mode] {
					return fmt.Errorf("unknown reset mode %q (use manual, auto, or daily)", mode)
				}
				opts.Mode = domain.ResetMode(mode)
			}

			if err := app.Goals.StartStep(ctx, goal.ID, index, opts); err != nil {
				return err
			}

			goal, err = app.Goals.Get(ctx, goal.ID)
			if err != nil {
				return err
			}
			step := goal.SubTasks[index]
			fmt.Printf("Started: %s (%s)\n", step.Title, formatter.FormatMinutes(step.DurationSec/60))
			fmt.Println(formatter.Dim("Run `innerpath focus` to watch the timer."))
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Override the step's duration")
	cmd.Flags().StringVar(&mode, "mode", "", "Reset mode for this step: manual, auto, daily")

	return cmd
}

func newStepModeCmd(app *App) *cobra.Command {
	var step int

	cmd := &cobra.Command{
		Use:   "mode <manual|auto|daily>",
		Short: "Set a step's timer reset mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidResetModes[args[0]] {
				return fmt.Errorf("unknown reset mode %q (use manual, auto, or daily)", args[0])
			}

			ctx := context.Background()
			goal, err := activeGoal(ctx, app)
			if err != nil {
				return err
			}

			index := goal.CheckpointIndex
			if cmd.Flags().Changed("step") {
				if step < 1 {
					return fmt.Errorf("step must be 1 or higher")
				}
				index = step - 1
			}

			if err := app.Goals.SetResetMode(ctx, goal.ID, index, domain.ResetMode(args[0])); err != nil {
				return err
			}
			fmt.Printf("Step %d reset mode set to %s.\n", index+1, args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&step, "step", 0, "Step number, 1-based (defaults to the current step)")

	return cmd
}

func newStepDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done [step]",
		Short: "Mark a step complete",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goal, err := activeGoal(ctx, app)
			if err != nil {
				return err
			}
			index, err := resolveStepIndex(goal, args)
			if err != nil {
				return err
			}

			ev, err := app.Goals.CompleteStep(ctx, goal.ID, index, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("Step complete: %s\n", goal.SubTasks[index].Title)
			if ev != nil {
				fmt.Println(formatter.StyleGood.Render(fmt.Sprintf("+%d XP", ev.Magnitude)))
			}
			return nil
		},
	}
}
