// ABOUTME: Opportunity database operations
// ABOUTME: CRUD and stage moves for the sales pipeline
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/socialpulse/models"
)

const opportunityColumns = `id, title, contact_id, value, stage, probability, close_date, notes, created_at, updated_at`

func validateOpportunity(o *models.Opportunity) error {
	if !models.IsValidStage(o.Stage) {
		return fmt.Errorf("invalid stage %q", o.Stage)
	}
	if o.Probability < 0 || o.Probability > 100 {
		return fmt.Errorf("probability must be between 0 and 100, got %d", o.Probability)
	}
	return nil
}

func nullableID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func CreateOpportunity(db *sql.DB, opp *models.Opportunity) error {
	if opp.ID == uuid.Nil {
		opp.ID = uuid.New()
	}
	if opp.Stage == "" {
		opp.Stage = models.StageProspecting
	}
	if err := validateOpportunity(opp); err != nil {
		return err
	}
	now := time.Now()
	opp.CreatedAt = now
	opp.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO opportunities (`+opportunityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, opp.ID.String(), opp.Title, nullableID(opp.ContactID), opp.Value, opp.Stage, opp.Probability,
		opp.CloseDate, opp.Notes, opp.CreatedAt, opp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}
	return nil
}

func scanOpportunity(row rowScanner) (*models.Opportunity, error) {
	var o models.Opportunity
	var contactID, notes sql.NullString
	var closeDate sql.NullTime

	err := row.Scan(&o.ID, &o.Title, &contactID, &o.Value, &o.Stage, &o.Probability, &closeDate,
		&notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if contactID.Valid {
		cid, err := uuid.Parse(contactID.String)
		if err == nil {
			o.ContactID = &cid
		}
	}
	if closeDate.Valid {
		o.CloseDate = &closeDate.Time
	}
	o.Notes = notes.String
	return &o, nil
}

func GetOpportunity(db *sql.DB, id uuid.UUID) (*models.Opportunity, error) {
	row := db.QueryRow(`SELECT `+opportunityColumns+` FROM opportunities WHERE id = ?`, id.String())
	o, err := scanOpportunity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return o, nil
}

// ListOpportunities returns opportunities, optionally restricted to one stage.
func ListOpportunities(db *sql.DB, stage string) ([]models.Opportunity, error) {
	var rows *sql.Rows
	var err error
	if stage != "" {
		rows, err = db.Query(`SELECT `+opportunityColumns+` FROM opportunities WHERE stage = ? ORDER BY created_at, title`, stage)
	} else {
		rows, err = db.Query(`SELECT ` + opportunityColumns + ` FROM opportunities ORDER BY created_at, title`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	opps := []models.Opportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opps = append(opps, *o)
	}
	return opps, rows.Err()
}

func UpdateOpportunity(db *sql.DB, opp *models.Opportunity) error {
	if err := validateOpportunity(opp); err != nil {
		return err
	}
	opp.UpdatedAt = time.Now()

	_, err := db.Exec(`
		UPDATE opportunities
		SET title = ?, contact_id = ?, value = ?, stage = ?, probability = ?, close_date = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, opp.Title, nullableID(opp.ContactID), opp.Value, opp.Stage, opp.Probability, opp.CloseDate,
		opp.Notes, opp.UpdatedAt, opp.ID.String())
	if err != nil {
		return fmt.Errorf("failed to update opportunity: %w", err)
	}
	return nil
}

func DeleteOpportunity(db *sql.DB, id uuid.UUID) error {
	if _, err := db.Exec(`DELETE FROM opportunities WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	return nil
}
