package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/innerpath-app/innerpath/internal/cli/formatter"
	"github.com/innerpath-app/innerpath/internal/domain"
)

// innerpathHuhTheme returns a custom huh theme using the active palette.
func innerpathHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := formatter.AccentColor()
	dim := formatter.DimColor()

	t.Focused.Title = lipgloss.NewStyle().Foreground(accent).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(accent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(accent)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(accent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(accent)
	t.Focused.Description = lipgloss.NewStyle().Foreground(dim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(dim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(dim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(dim)

	return t
}

func newInitCmd(app *App) *cobra.Command {
	var name, theme string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := app.IsInteractive != nil && app.IsInteractive()

			if interactive && name == "" {
				theme = string(domain.ThemeEmerald)
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("What should I call you?").
							Value(&name),
						huh.NewSelect[string]().
							Title("Pick a theme").
							Options(
								huh.NewOption("Emerald", string(domain.ThemeEmerald)),
								huh.NewOption("Violet", string(domain.ThemeViolet)),
								huh.NewOption("Steel", string(domain.ThemeSteel)),
							).
							Value(&theme),
					),
				).WithTheme(innerpathHuhTheme())

				if err := form.Run(); err != nil {
					return err
				}
			}

			if name == "" {
				return fmt.Errorf("a name is required (use --name when not running interactively)")
			}
			if theme == "" {
				theme = string(domain.ThemeEmerald)
			}

			if err := app.Profile.Setup(context.Background(), name, domain.Theme(theme)); err != nil {
				return err
			}

			formatter.SetTheme(domain.Theme(theme))
			fmt.Printf("Welcome, %s. Your journey begins.\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&theme, "theme", "", "Visual theme (emerald, violet, steel)")

	return cmd
}
