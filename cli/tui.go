// ABOUTME: Interactive terminal UI subcommand
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harperreed/socialpulse/tui"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.loadStore()
			if err != nil {
				return err
			}

			model, err := tui.NewModel(a.db, tui.Options{
				Identity:     a.cfg.Identity(),
				Store:        store,
				ReplyDelay:   a.cfg.Copilot.ReplyDelay,
				HighContrast: a.cfg.Accessibility.HighContrast,
				VoiceEnabled: a.cfg.Accessibility.VoiceCommands,
				Logger:       a.logger,
			})
			if err != nil {
				return err
			}
			defer model.Close()

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
