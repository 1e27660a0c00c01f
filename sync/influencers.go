// ABOUTME: Influencer discovery importer
// ABOUTME: Stores simulated influencer profiles for a category and platform
package sync

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

const (
	DefaultCategory = "tech"
	DefaultPlatform = "instagram"

	influencersService = "influencers"
)

type InfluencerImporter struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewInfluencerImporter(database *sql.DB, logger *zap.Logger) *InfluencerImporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InfluencerImporter{db: database, logger: logger}
}

func cannedInfluencers(category, platform string) []models.Influencer {
	return []models.Influencer{
		{
			Name:           "Alex Chen",
			Platform:       platform,
			Handle:         "@alexchen_tech",
			FollowerCount:  125000,
			EngagementRate: 3.2,
			Category:       category,
			AvatarURL:      "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop&crop=face",
			Bio:            "Tech enthusiast sharing the latest gadgets and software reviews.",
		},
		{
			Name:           "Maria Rodriguez",
			Platform:       platform,
			Handle:         "@maria_tech_life",
			FollowerCount:  89000,
			EngagementRate: 4.1,
			Category:       category,
			AvatarURL:      "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=100&h=100&fit=crop&crop=face",
			Bio:            "Software engineer by day, tech reviewer by night. Building the future.",
		},
		{
			Name:           "David Kim",
			Platform:       platform,
			Handle:         "@davidkimtech",
			FollowerCount:  67000,
			EngagementRate: 2.8,
			Category:       category,
			AvatarURL:      "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&h=100&fit=crop&crop=face",
			Bio:            "Startup founder sharing insights on emerging technologies.",
		},
	}
}

// Discover stores influencer profiles for category on platform and returns
// them. Empty arguments fall back to tech and instagram.
func (ii *InfluencerImporter) Discover(ctx context.Context, identity models.Identity, category, platform string) ([]models.Influencer, error) {
	if !identity.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if category == "" {
		category = DefaultCategory
	}
	if platform == "" {
		platform = DefaultPlatform
	}

	existing, err := db.ListInfluencers(ii.db, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing influencers: %w", err)
	}
	matcher := NewInfluencerMatcher(existing)

	var out []models.Influencer
	created := 0
	for _, inf := range cannedInfluencers(category, platform) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		inf := inf
		inf.UserID = identity.UserID

		if found, ok := matcher.FindMatch(&inf); ok {
			out = append(out, *found)
			continue
		}
		if err := db.CreateInfluencer(ii.db, &inf); err != nil {
			return nil, fmt.Errorf("failed to store influencer: %w", err)
		}
		matcher.Add(&inf)
		out = append(out, inf)
		created++
	}

	ii.logger.Info("influencers discovered",
		zap.String("user", identity.UserID),
		zap.String("category", category),
		zap.String("platform", platform),
		zap.Int("created", created))

	return out, nil
}
