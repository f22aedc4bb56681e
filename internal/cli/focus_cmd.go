package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "focus",
		Short: "Watch the active step's timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("focus needs an interactive terminal (use `innerpath status` instead)")
			}

			p := tea.NewProgram(newFocusModel(app))
			_, err := p.Run()
			return err
		},
	}
}
