// ABOUTME: Runs the mention and influencer importers together
// ABOUTME: Records per-service status in sync_state and fails fast on the first error
package sync

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

// Request selects what a Runner imports.
type Request struct {
	Keywords []string
	Category string
	Platform string
}

type Result struct {
	Mentions    []models.Mention
	Influencers []models.Influencer
}

type Runner struct {
	db          *sql.DB
	mentions    *MonitoringImporter
	influencers *InfluencerImporter
	logger      *zap.Logger
}

func NewRunner(database *sql.DB, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		db:          database,
		mentions:    NewMonitoringImporter(database, logger),
		influencers: NewInfluencerImporter(database, logger),
		logger:      logger,
	}
}

// Run imports mentions and influencers concurrently.
func (r *Runner) Run(ctx context.Context, identity models.Identity, req Request) (*Result, error) {
	if !identity.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	var res Result
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.track(mentionsService, func() (int, error) {
			m, err := r.mentions.FetchMentions(gctx, identity, req.Keywords)
			res.Mentions = m
			return len(m), err
		})
	})
	g.Go(func() error {
		return r.track(influencersService, func() (int, error) {
			inf, err := r.influencers.Discover(gctx, identity, req.Category, req.Platform)
			res.Influencers = inf
			return len(inf), err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

// track wraps one import with sync_state bookkeeping.
func (r *Runner) track(service string, fn func() (int, error)) error {
	if err := db.UpdateSyncStatus(r.db, service, db.SyncSyncing, nil); err != nil {
		return err
	}

	start := time.Now()
	items, err := fn()
	if err != nil {
		msg := err.Error()
		if serr := db.UpdateSyncStatus(r.db, service, db.SyncError, &msg); serr != nil {
			r.logger.Warn("failed to record sync error", zap.String("service", service), zap.Error(serr))
		}
		r.logger.Error("import failed", zap.String("service", service), zap.Error(err))
		return err
	}

	if err := db.MarkSynced(r.db, service, time.Now(), items); err != nil {
		return err
	}
	r.logger.Debug("import finished", zap.String("service", service), zap.Int("items", items), zap.Duration("took", time.Since(start)))
	return nil
}
