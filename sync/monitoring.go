// ABOUTME: Social mention importer
// ABOUTME: Produces simulated mentions for the tracked keyword and stores them for the user
package sync

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/sentiment"
)

// DefaultKeyword is tracked when no keywords are given.
const DefaultKeyword = "your brand"

const mentionsService = "mentions"

type MonitoringImporter struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewMonitoringImporter(database *sql.DB, logger *zap.Logger) *MonitoringImporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonitoringImporter{db: database, logger: logger, now: time.Now}
}

// cannedMentions is the fixed sample feed. Sentiment scores are the feed's
// own; the label is derived from them.
func cannedMentions(keyword string, now time.Time) []models.Mention {
	day := 24 * time.Hour
	mentions := []models.Mention{
		{
			Platform:        "twitter",
			Content:         fmt.Sprintf("Just tried %s and I'm impressed! Great user experience.", keyword),
			Author:          "tech_reviewer_23",
			AuthorURL:       "https://twitter.com/tech_reviewer_23",
			PostURL:         "https://twitter.com/tech_reviewer_23/status/123456789",
			Sentiment:       0.8,
			EngagementCount: 45,
			Reach:           1200,
			MentionDate:     now,
		},
		{
			Platform:        "facebook",
			Content:         fmt.Sprintf("%s customer service could be better. Had to wait 30 minutes for support.", keyword),
			Author:          "Sarah Johnson",
			AuthorURL:       "https://facebook.com/sarah.johnson",
			PostURL:         "https://facebook.com/posts/123456789",
			Sentiment:       -0.6,
			EngagementCount: 12,
			Reach:           350,
			MentionDate:     now.Add(-day),
		},
		{
			Platform:        "instagram",
			Content:         fmt.Sprintf("Using %s for my morning routine. Works well!", keyword),
			Author:          "fitness_guru_mike",
			AuthorURL:       "https://instagram.com/fitness_guru_mike",
			PostURL:         "https://instagram.com/p/ABC123DEF456",
			Sentiment:       0.4,
			EngagementCount: 89,
			Reach:           2100,
			MentionDate:     now.Add(-2 * day),
		},
	}
	for i := range mentions {
		mentions[i].SentimentLabel = sentiment.Label(mentions[i].Sentiment)
	}
	return mentions
}

// FetchMentions stores the sample mentions for keywords[0] and returns them.
// Mentions already stored for the user are returned as-is rather than duplicated.
func (mi *MonitoringImporter) FetchMentions(ctx context.Context, identity models.Identity, keywords []string) ([]models.Mention, error) {
	if !identity.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	keyword := DefaultKeyword
	if len(keywords) > 0 && keywords[0] != "" {
		keyword = keywords[0]
	}

	existing, err := db.ListMentions(mi.db, identity.UserID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing mentions: %w", err)
	}
	matcher := NewMentionMatcher(existing)

	var out []models.Mention
	created := 0
	for _, m := range cannedMentions(keyword, mi.now()) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := m
		m.UserID = identity.UserID

		if found, ok := matcher.FindMatch(&m); ok {
			out = append(out, *found)
			continue
		}
		if err := db.CreateMention(mi.db, &m); err != nil {
			return nil, fmt.Errorf("failed to store mention: %w", err)
		}
		matcher.Add(&m)
		out = append(out, m)
		created++
	}

	mi.logger.Info("mentions fetched",
		zap.String("user", identity.UserID),
		zap.String("keyword", keyword),
		zap.Int("created", created),
		zap.Int("total", len(out)))

	return out, nil
}
