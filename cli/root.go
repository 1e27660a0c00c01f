// ABOUTME: Root cobra command and shared state for every subcommand
// ABOUTME: Loads config, builds the zap logger and opens the database before a command runs
package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/charm"
	"github.com/harperreed/socialpulse/config"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/logging"
	"github.com/harperreed/socialpulse/models"
)

// app carries what PersistentPreRunE set up to the subcommands.
type app struct {
	version string
	v       *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
	db      *sql.DB

	openCharm func(config.CharmConfig) (*charm.Client, error)
}

// Execute builds the command tree and runs it with ctx.
func Execute(ctx context.Context, version string) error {
	a := &app{
		version: version,
		v:       config.New(),
		openCharm: func(s config.CharmConfig) (*charm.Client, error) {
			return charm.NewClient(charm.FromSettings(s))
		},
	}
	return a.execute(ctx, newRoot(a))
}

// execute runs root and then releases the database and logger. cobra skips
// post-run hooks when RunE fails, so teardown happens here instead.
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if terr := a.teardown(); err == nil {
		err = terr
	}
	return err
}

func newRoot(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "socialpulse",
		Short: "Social Pulse 360: social media monitoring with CRM, NPS and an AI copilot",
		Long: `socialpulse monitors brand mentions, tracks influencers and keeps a
small CRM with NPS survey results. The copilot answers questions about
the platform from the terminal, the web UI or an MCP client.

Run "socialpulse seed" once to load the demo data.`,
		Version:       a.version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.String("db-path", "", "Database path (default: $XDG_DATA_HOME/socialpulse/socialpulse.db)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("user", "", "Signed-in user id; mention and influencer commands need one")
	_ = a.v.BindPFlag("db_path", flags.Lookup("db-path"))
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("user", flags.Lookup("user"))

	root.AddCommand(
		newContactsCommand(a),
		newOpportunitiesCommand(a),
		newNPSCommand(a),
		newWidgetsCommand(a),
		newChatCommand(a),
		newMentionsCommand(a),
		newInfluencersCommand(a),
		newSentimentCommand(a),
		newDashboardCommand(a),
		newGraphCommand(a),
		newMCPCommand(a),
		newServeCommand(a),
		newTUICommand(a),
		newSyncCommand(a),
		newSeedCommand(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger

	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	a.db = database
	a.logger.Debug("database opened", zap.String("path", cfg.DBPath))
	return nil
}

func (a *app) teardown() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		return err
	}
	return nil
}

// loadStore builds a widget store from the saved dashboards, falling back to
// the seeded default dashboard when nothing has been saved yet.
func (a *app) loadStore() (*analytics.Store, error) {
	saved, err := db.LoadDashboards(a.db)
	if err != nil {
		return nil, err
	}
	opts := []analytics.Option{analytics.WithLogger(a.logger)}
	if len(saved) > 0 {
		opts = append(opts, analytics.WithDashboards(saved))
	}
	return analytics.NewStore(opts...), nil
}

func (a *app) saveStore(store *analytics.Store) error {
	return store.Save(func(dashboards []models.Dashboard) error {
		return db.SaveDashboards(a.db, dashboards)
	})
}
