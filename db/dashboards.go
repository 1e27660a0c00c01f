// ABOUTME: Dashboard and widget persistence
// ABOUTME: A dashboard is saved whole; widget data and config are stored as JSON
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/harperreed/socialpulse/models"
)

// SaveDashboard replaces the stored copy of d, including its widgets, in
// one transaction. Widget order is kept via a position column.
func SaveDashboard(db *sql.DB, d models.Dashboard, position int) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	_, err = tx.Exec(`
		INSERT INTO dashboards (id, name, position) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, position = excluded.position
	`, d.ID, d.Name, position)
	if err != nil {
		return fmt.Errorf("failed to save dashboard: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM widgets WHERE dashboard_id = ?`, d.ID); err != nil {
		return fmt.Errorf("failed to clear widgets: %w", err)
	}

	for i, w := range d.Widgets {
		data, err := json.Marshal(w.Data)
		if err != nil {
			return fmt.Errorf("failed to encode widget data: %w", err)
		}
		config, err := json.Marshal(w.Config)
		if err != nil {
			return fmt.Errorf("failed to encode widget config: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO widgets (id, dashboard_id, position, type, title, size, data, config)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, w.ID, d.ID, i, w.Type, w.Title, w.Size, string(data), string(config))
		if err != nil {
			return fmt.Errorf("failed to save widget %s: %w", w.ID, err)
		}
	}

	return tx.Commit()
}

// SaveDashboards stores every dashboard in order.
func SaveDashboards(db *sql.DB, dashboards []models.Dashboard) error {
	for i, d := range dashboards {
		if err := SaveDashboard(db, d, i); err != nil {
			return err
		}
	}
	return nil
}

// LoadDashboards returns the stored dashboards in saved order. An empty
// database returns an empty slice.
func LoadDashboards(db *sql.DB) ([]models.Dashboard, error) {
	rows, err := db.Query(`SELECT id, name FROM dashboards ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboards: %w", err)
	}

	dashboards := []models.Dashboard{}
	for rows.Next() {
		var d models.Dashboard
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan dashboard: %w", err)
		}
		dashboards = append(dashboards, d)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// single connection: release it before the widget queries
	_ = rows.Close()

	for i := range dashboards {
		widgets, err := listWidgets(db, dashboards[i].ID)
		if err != nil {
			return nil, err
		}
		dashboards[i].Widgets = widgets
	}
	return dashboards, nil
}

func listWidgets(db *sql.DB, dashboardID string) ([]models.Widget, error) {
	rows, err := db.Query(`
		SELECT id, type, title, size, data, config
		FROM widgets WHERE dashboard_id = ? ORDER BY position
	`, dashboardID)
	if err != nil {
		return nil, fmt.Errorf("failed to query widgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	widgets := []models.Widget{}
	for rows.Next() {
		var w models.Widget
		var data, config string
		if err := rows.Scan(&w.ID, &w.Type, &w.Title, &w.Size, &data, &config); err != nil {
			return nil, fmt.Errorf("failed to scan widget: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &w.Data); err != nil {
			return nil, fmt.Errorf("failed to decode widget %s data: %w", w.ID, err)
		}
		if err := json.Unmarshal([]byte(config), &w.Config); err != nil {
			return nil, fmt.Errorf("failed to decode widget %s config: %w", w.ID, err)
		}
		if w.Config == nil {
			w.Config = map[string]any{}
		}
		widgets = append(widgets, w)
	}
	return widgets, rows.Err()
}
