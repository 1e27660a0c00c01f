// ABOUTME: Sync CLI commands
// ABOUTME: Pushes and pulls dashboard layouts through charm and runs the mention/influencer importers
package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/charm"
	"github.com/harperreed/socialpulse/db"
	pulsesync "github.com/harperreed/socialpulse/sync"
)

// charmService is the sync_state row for dashboard layout sync.
const charmService = "charm"

func newSyncCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync dashboard layouts across devices and import social data",
	}
	cmd.AddCommand(
		newSyncPushCommand(a),
		newSyncPullCommand(a),
		newSyncStatusCommand(a),
		newSyncImportCommand(a),
	)
	return cmd
}

func (a *app) layoutSync() (*charm.LayoutSync, error) {
	client, err := a.openCharm(a.cfg.Charm)
	if err != nil {
		return nil, err
	}
	return charm.NewLayoutSync(client, a.logger), nil
}

// recordSync stores the outcome of a charm sync in sync_state.
func (a *app) recordSync(layouts int, syncErr error) {
	var err error
	if syncErr != nil {
		msg := syncErr.Error()
		err = db.UpdateSyncStatus(a.db, charmService, db.SyncError, &msg)
	} else {
		err = db.MarkSynced(a.db, charmService, time.Now(), layouts)
	}
	if err != nil {
		a.logger.Warn("failed to record sync state", zap.Error(err))
	}
}

func newSyncPushCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload this device's dashboard layouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ls, err := a.layoutSync()
			if err != nil {
				return err
			}
			store, err := a.loadStore()
			if err != nil {
				return err
			}

			dashboards := store.Dashboards()
			err = ls.Push(dashboards)
			a.recordSync(len(dashboards), err)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Pushed %d dashboards\n", len(dashboards))
			return nil
		},
	}
}

func newSyncPullCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Replace local dashboard layouts with the synced ones",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ls, err := a.layoutSync()
			if err != nil {
				return err
			}

			dashboards, err := ls.Pull()
			a.recordSync(len(dashboards), err)
			if err != nil {
				return err
			}
			if len(dashboards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to pull; local layouts unchanged")
				return nil
			}
			if err := db.SaveDashboards(a.db, dashboards); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Pulled %d dashboards\n", len(dashboards))
			return nil
		},
	}
}

func newSyncStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show charm connection and importer status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			ls, err := a.layoutSync()
			if err != nil {
				return err
			}
			st, err := ls.Status()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Charm host:  %s\n", st.Host)
			fmt.Fprintf(out, "Connected:   %t\n", st.Connected)
			fmt.Fprintf(out, "Auto-sync:   %t\n", st.AutoSync)
			fmt.Fprintf(out, "Layouts:     %d\n", st.Dashboards)
			if st.PushedAt != nil {
				fmt.Fprintf(out, "Last push:   %s\n", st.PushedAt.Format(time.RFC3339))
			}

			states, err := db.GetAllSyncStates(a.db)
			if err != nil {
				return err
			}
			if len(states) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "SERVICE\tSTATUS\tLAST SYNC\tITEMS\tERROR")
			for _, s := range states {
				last := "never"
				if s.LastSyncTime != nil {
					last = s.LastSyncTime.Format(time.RFC3339)
				}
				errMsg := ""
				if s.ErrorMessage != nil {
					errMsg = *s.ErrorMessage
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.Service, s.Status, last, s.LastItems, errMsg)
			}
			return w.Flush()
		},
	}
}

func newSyncImportCommand(a *app) *cobra.Command {
	var req pulsesync.Request

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Fetch mentions and discover influencers in one run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := pulsesync.NewRunner(a.db, a.logger).Run(cmd.Context(), a.cfg.Identity(), req)
			if err != nil {
				return errSignIn(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %d mentions, %d influencers\n", len(res.Mentions), len(res.Influencers))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&req.Keywords, "keyword", nil, "Keyword to monitor (repeatable)")
	f.StringVar(&req.Category, "category", "", "Influencer category (default tech)")
	f.StringVar(&req.Platform, "platform", "", "Influencer platform (default instagram)")
	return cmd
}
