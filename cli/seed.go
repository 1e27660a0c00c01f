// ABOUTME: Loads the demo contacts, opportunities, NPS responses and dashboard
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/db"
)

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contacts, err := db.ListContacts(a.db)
			if err != nil {
				return err
			}
			if len(contacts) > 0 {
				return fmt.Errorf("database already has %d contacts; seed only runs on an empty database", len(contacts))
			}

			if err := db.Seed(a.db); err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}
			if err := a.saveStore(analytics.NewStore()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Demo data loaded")
			return nil
		},
	}
}
