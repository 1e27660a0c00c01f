// ABOUTME: NPS response storage
// ABOUTME: Validates scores before insert; lists responses newest first
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/nps"
)

func CreateNPSResponse(db *sql.DB, r *models.NPSResponse) error {
	if err := nps.ValidateScore(r.Score); err != nil {
		return err
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Date.IsZero() {
		r.Date = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO nps_responses (id, score, feedback, date, source)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID.String(), r.Score, r.Feedback, r.Date, r.Source)
	if err != nil {
		return fmt.Errorf("failed to create nps response: %w", err)
	}
	return nil
}

// ListNPSResponses returns responses newest first.
func ListNPSResponses(db *sql.DB) ([]models.NPSResponse, error) {
	rows, err := db.Query(`SELECT id, score, feedback, date, source FROM nps_responses ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nps responses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.NPSResponse{}
	for rows.Next() {
		var r models.NPSResponse
		var feedback, source sql.NullString
		if err := rows.Scan(&r.ID, &r.Score, &feedback, &r.Date, &source); err != nil {
			return nil, fmt.Errorf("failed to scan nps response: %w", err)
		}
		r.Feedback = feedback.String
		r.Source = source.String
		out = append(out, r)
	}
	return out, rows.Err()
}
