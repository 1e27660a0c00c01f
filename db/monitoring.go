// ABOUTME: Storage for social mentions and discovered influencers
// ABOUTME: Rows are owned by a user id; listings are scoped to that user
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/socialpulse/models"
)

func CreateMention(db *sql.DB, m *models.Mention) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO mentions (id, user_id, platform, content, author, author_url, post_url, sentiment,
			sentiment_label, engagement_count, reach, mention_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID.String(), m.UserID, m.Platform, m.Content, m.Author, m.AuthorURL, m.PostURL, m.Sentiment,
		m.SentimentLabel, m.EngagementCount, m.Reach, m.MentionDate, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create mention: %w", err)
	}
	return nil
}

// ListMentions returns a user's mentions, most recent first. limit <= 0 means no limit.
func ListMentions(db *sql.DB, userID string, limit int) ([]models.Mention, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(`
		SELECT id, user_id, platform, content, author, author_url, post_url, sentiment,
			sentiment_label, engagement_count, reach, mention_date, created_at
		FROM mentions WHERE user_id = ?
		ORDER BY mention_date DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.Mention{}
	for rows.Next() {
		var m models.Mention
		var author, authorURL, postURL, label sql.NullString
		err := rows.Scan(&m.ID, &m.UserID, &m.Platform, &m.Content, &author, &authorURL, &postURL,
			&m.Sentiment, &label, &m.EngagementCount, &m.Reach, &m.MentionDate, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mention: %w", err)
		}
		m.Author = author.String
		m.AuthorURL = authorURL.String
		m.PostURL = postURL.String
		m.SentimentLabel = label.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func CreateInfluencer(db *sql.DB, inf *models.Influencer) error {
	if inf.ID == uuid.Nil {
		inf.ID = uuid.New()
	}
	if inf.CreatedAt.IsZero() {
		inf.CreatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO influencers (id, user_id, name, platform, handle, follower_count, engagement_rate,
			category, avatar_url, bio, is_tracked, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, inf.ID.String(), inf.UserID, inf.Name, inf.Platform, inf.Handle, inf.FollowerCount, inf.EngagementRate,
		inf.Category, inf.AvatarURL, inf.Bio, inf.IsTracked, inf.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create influencer: %w", err)
	}
	return nil
}

// ListInfluencers returns a user's influencers by follower count, largest first.
func ListInfluencers(db *sql.DB, userID string) ([]models.Influencer, error) {
	rows, err := db.Query(`
		SELECT id, user_id, name, platform, handle, follower_count, engagement_rate,
			category, avatar_url, bio, is_tracked, created_at
		FROM influencers WHERE user_id = ?
		ORDER BY follower_count DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query influencers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.Influencer{}
	for rows.Next() {
		var inf models.Influencer
		var category, avatar, bio sql.NullString
		err := rows.Scan(&inf.ID, &inf.UserID, &inf.Name, &inf.Platform, &inf.Handle, &inf.FollowerCount,
			&inf.EngagementRate, &category, &avatar, &bio, &inf.IsTracked, &inf.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan influencer: %w", err)
		}
		inf.Category = category.String
		inf.AvatarURL = avatar.String
		inf.Bio = bio.String
		out = append(out, inf)
	}
	return out, rows.Err()
}

// SetInfluencerTracked flips the tracked flag for one of the user's influencers.
func SetInfluencerTracked(db *sql.DB, userID string, id uuid.UUID, tracked bool) error {
	res, err := db.Exec(`UPDATE influencers SET is_tracked = ? WHERE id = ? AND user_id = ?`, tracked, id.String(), userID)
	if err != nil {
		return fmt.Errorf("failed to update influencer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("influencer %s not found", id)
	}
	return nil
}
