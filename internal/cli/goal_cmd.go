package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/service"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage your active goal",
	}

	cmd.AddCommand(
		newGoalAddCmd(app),
		newGoalShowCmd(app),
		newGoalBreakdownCmd(app),
		newGoalFinishCmd(app),
	)

	return cmd
}

// activeGoal resolves the single active goal or explains how to get one.
func activeGoal(ctx context.Context, app *App) (*domain.Goal, error) {
	goal, err := app.Goals.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("no active goal (start one with `innerpath goal add`): %w", err)
	}
	return goal, nil
}

func newGoalAddCmd(app *App) *cobra.Command {
	var title, category, topic, notes string

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"new"},
		Short:   "Start a new goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			g := &domain.Goal{
				ID:       uuid.New().String(),
				Title:    title,
				Category: category,
				Topic:    topic,
				Notes:    notes,
				Status:   domain.GoalActive,
			}
			if err := app.Goals.Create(ctx, g); err != nil {
				return err
			}
			fmt.Printf("Goal created: %s\n", g.Title)

			// When the mentor is available, offer the breakdown right away.
			if app.Breakdown != nil {
				if err := runBreakdown(ctx, app, g); err != nil {
					fmt.Printf("The mentor could not break this down yet (%v).\n", err)
					fmt.Println("Run `innerpath goal breakdown` to try again, or add steps with `innerpath step add`.")
					return nil
				}
			} else {
				fmt.Println("Add steps with `innerpath step add`, or enable the mentor for an automatic breakdown.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Goal title")
	cmd.Flags().StringVar(&category, "category", "", "Category (learning, health, creativity, ...)")
	cmd.Flags().StringVar(&topic, "topic", "", "Topic or focus area")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the mentor's breakdown")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func runBreakdown(ctx context.Context, app *App, g *domain.Goal) error {
	spinner := formatter.NewSpinner("Asking the mentor to break this down...")
	spinner.Start()
	bd, err := app.Breakdown.Decompose(ctx, g.Title, g.Notes)
	spinner.Stop()
	if err != nil {
		return err
	}

	steps := make([]service.StepInput, 0, len(bd.Steps))
	for _, s := range bd.Steps {
		steps = append(steps, service.StepInput{
			Title:       s.Title,
			Description: s.Description,
			Explanation: s.Explanation,
			DurationMin: s.DurationMin,
		})
	}
	if err := app.Goals.InstallBreakdown(ctx, g.ID, steps); err != nil {
		return err
	}

	fmt.Println(formatter.FormatBreakdown(bd))
	fmt.Println("\nStart the first step with `innerpath step start`.")
	return nil
}

func newGoalBreakdownCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Ask the mentor to break the goal into steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Breakdown == nil {
				return fmt.Errorf("the mentor is disabled (set INNERPATH_LLM_ENABLED=true)")
			}
			ctx := context.Background()
			goal, err := activeGoal(ctx, app)
			if err != nil {
				return err
			}
			return runBreakdown(ctx, app, goal)
		},
	}
}

func newGoalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active goal and its steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goal, err := activeGoal(ctx, app)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Bold(goal.Title))
			if goal.Category != "" {
				fmt.Println(formatter.Dim("Category: " + goal.Category))
			}
			if goal.AwaitingBreakdown() {
				fmt.Println(formatter.Dim("No steps yet."))
				return nil
			}

			now := time.Now()
			for i, step := range goal.SubTasks {
				fmt.Println(formatStepLine(i, step, i == goal.CheckpointIndex, now))
			}
			return nil
		},
	}
}

func newGoalFinishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "finish",
		Short: "Close out the active goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			goal, err := activeGoal(ctx, app)
			if err != nil {
				return err
			}

			summary, err := app.Goals.Finish(ctx, goal.ID)
			if err != nil {
				return err
			}

			fmt.Printf("Journey complete: %s\n", formatter.Bold(summary.Title))
			fmt.Printf("  %d of %d steps finished, %s of focus.\n",
				summary.CompletedSteps, summary.TotalSteps,
				formatter.FormatMinutes(summary.FocusMin))
			return nil
		},
	}
}
