// ABOUTME: Run bookkeeping for importers and layout sync in the sync_state table
// ABOUTME: One row per service: current status, last good run and how many records it moved
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	SyncIdle    = "idle"
	SyncSyncing = "syncing"
	SyncError   = "error"
)

// SyncState is the latest known run of one service (mentions, influencers, charm).
type SyncState struct {
	Service      string
	Status       string
	LastSyncTime *time.Time
	LastItems    int
	ErrorMessage *string
	UpdatedAt    time.Time
}

const syncStateColumns = `service, status, last_sync_time, last_items, error_message, updated_at`

func scanSyncState(row rowScanner) (*SyncState, error) {
	var (
		state   SyncState
		last    sql.NullTime
		message sql.NullString
	)
	if err := row.Scan(&state.Service, &state.Status, &last, &state.LastItems, &message, &state.UpdatedAt); err != nil {
		return nil, err
	}
	if last.Valid {
		state.LastSyncTime = &last.Time
	}
	if message.Valid {
		state.ErrorMessage = &message.String
	}
	return &state, nil
}

// GetSyncState returns nil, nil for a service that never ran.
func GetSyncState(db *sql.DB, service string) (*SyncState, error) {
	state, err := scanSyncState(db.QueryRow(`SELECT `+syncStateColumns+` FROM sync_state WHERE service = ?`, service))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync state: %w", err)
	}
	return state, nil
}

// UpdateSyncStatus moves a service to status without touching its last run.
func UpdateSyncStatus(db *sql.DB, service, status string, errorMsg *string) error {
	var message sql.NullString
	if errorMsg != nil {
		message = sql.NullString{String: *errorMsg, Valid: true}
	}

	_, err := db.Exec(`
		INSERT INTO sync_state (service, status, error_message, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(service) DO UPDATE SET
			status = excluded.status,
			error_message = excluded.error_message,
			updated_at = CURRENT_TIMESTAMP
	`, service, status, message)
	if err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}
	return nil
}

// MarkSynced records a finished run that moved items records.
func MarkSynced(db *sql.DB, service string, at time.Time, items int) error {
	_, err := db.Exec(`
		INSERT INTO sync_state (service, status, last_sync_time, last_items, updated_at)
		VALUES (?, 'idle', ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(service) DO UPDATE SET
			status = 'idle',
			last_sync_time = excluded.last_sync_time,
			last_items = excluded.last_items,
			error_message = NULL,
			updated_at = CURRENT_TIMESTAMP
	`, service, at, items)
	if err != nil {
		return fmt.Errorf("failed to mark synced: %w", err)
	}
	return nil
}

func GetAllSyncStates(db *sql.DB) ([]SyncState, error) {
	rows, err := db.Query(`SELECT ` + syncStateColumns + ` FROM sync_state ORDER BY service`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync states: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var states []SyncState
	for rows.Next() {
		state, err := scanSyncState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync state: %w", err)
		}
		states = append(states, *state)
	}
	return states, rows.Err()
}
