package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
	"github.com/innerpath-app/innerpath/internal/domain"
)

func newMentorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mentor",
		Short: "Talk to Rudh-h, your mentor",
	}

	cmd.AddCommand(
		newMentorChatCmd(app),
		newMentorBriefingCmd(app),
		newMentorSuggestCmd(app),
	)

	return cmd
}

// mentorProfile loads the profile, tolerating its absence so the mentor
// still answers before `innerpath init`.
func mentorProfile(ctx context.Context, app *App) *domain.UserProfile {
	profile, err := app.Profile.Get(ctx)
	if err != nil {
		return nil
	}
	return profile
}

func newMentorChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the mentor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Chat == nil {
				return fmt.Errorf("the mentor is disabled (set INNERPATH_LLM_ENABLED=true)")
			}

			ctx := context.Background()
			profile := mentorProfile(ctx, app)

			// One-shot when a message is given on the command line.
			if len(args) > 0 {
				_, reply, err := app.Chat.StartChat(ctx, profile, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Println(formatter.FormatReply(reply))
				return nil
			}

			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("a message is required when not running interactively")
			}

			fmt.Println(formatter.Dim("Chatting with Rudh-h. Empty line to leave."))
			scanner := bufio.NewScanner(os.Stdin)

			fmt.Print(formatter.StyleAccent.Render("you: "))
			if !scanner.Scan() {
				return nil
			}
			first := strings.TrimSpace(scanner.Text())
			if first == "" {
				return nil
			}

			conversation, reply, err := app.Chat.StartChat(ctx, profile, first)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatReply(reply))

			for {
				fmt.Print(formatter.StyleAccent.Render("you: "))
				if !scanner.Scan() {
					return nil
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					fmt.Println(formatter.Dim("Walk well, friend."))
					return nil
				}

				reply, err := app.Chat.NextTurn(ctx, profile, conversation, line)
				if err != nil {
					return err
				}
				fmt.Println(formatter.FormatReply(reply))
			}
		},
	}

	return cmd
}

func newMentorBriefingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "briefing",
		Short: "Get your morning briefing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Briefing == nil {
				return fmt.Errorf("the mentor is disabled (set INNERPATH_LLM_ENABLED=true)")
			}

			ctx := context.Background()
			profile := mentorProfile(ctx, app)

			goal, err := app.Goals.Active(ctx)
			if err != nil {
				goal = nil
			}

			reply := app.Briefing.MorningBriefing(ctx, profile, goal)
			fmt.Println(formatter.FormatReply(reply))
			return nil
		},
	}
}

func newMentorSuggestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Get ideas for your next journey",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Suggest == nil {
				return fmt.Errorf("the mentor is disabled (set INNERPATH_LLM_ENABLED=true)")
			}

			ctx := context.Background()
			suggestions := app.Suggest.Suggest(ctx, mentorProfile(ctx, app))

			fmt.Println(formatter.FormatSuggestions(suggestions))
			fmt.Println(formatter.Dim("Start one with `innerpath goal add --title ...`"))
			return nil
		},
	}
}
