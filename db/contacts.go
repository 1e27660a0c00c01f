// ABOUTME: Contact database operations
// ABOUTME: CRUD plus status updates; filtering happens in the crm package
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/socialpulse/models"
)

const contactColumns = `id, name, email, phone, company, role, status, last_contact, source, notes, created_at, updated_at`

// CreateContact inserts contact. A nil ID is replaced with a fresh one.
func CreateContact(db *sql.DB, contact *models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	if contact.Status == "" {
		contact.Status = models.StatusCold
	}
	if !models.IsValidStatus(contact.Status) {
		return fmt.Errorf("invalid contact status %q", contact.Status)
	}
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO contacts (`+contactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID.String(), contact.Name, contact.Email, contact.Phone, contact.Company, contact.Role,
		contact.Status, contact.LastContact, contact.Source, contact.Notes, contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*models.Contact, error) {
	var c models.Contact
	var email, phone, company, role, source, notes sql.NullString
	var lastContact sql.NullTime

	err := row.Scan(&c.ID, &c.Name, &email, &phone, &company, &role, &c.Status, &lastContact,
		&source, &notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Email = email.String
	c.Phone = phone.String
	c.Company = company.String
	c.Role = role.String
	c.Source = source.String
	c.Notes = notes.String
	if lastContact.Valid {
		c.LastContact = &lastContact.Time
	}
	return &c, nil
}

// GetContact returns nil, nil when no contact has that id.
func GetContact(db *sql.DB, id uuid.UUID) (*models.Contact, error) {
	row := db.QueryRow(`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id.String())
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return c, nil
}

// ListContacts returns every contact, oldest first.
func ListContacts(db *sql.DB) ([]models.Contact, error) {
	rows, err := db.Query(`SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

func UpdateContact(db *sql.DB, id uuid.UUID, updates *models.Contact) error {
	if !models.IsValidStatus(updates.Status) {
		return fmt.Errorf("invalid contact status %q", updates.Status)
	}
	updates.UpdatedAt = time.Now()

	_, err := db.Exec(`
		UPDATE contacts
		SET name = ?, email = ?, phone = ?, company = ?, role = ?, status = ?, last_contact = ?, source = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, updates.Email, updates.Phone, updates.Company, updates.Role, updates.Status,
		updates.LastContact, updates.Source, updates.Notes, updates.UpdatedAt, id.String())
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return nil
}

// UpdateContactStatus moves a contact between hot, warm and cold.
func UpdateContactStatus(db *sql.DB, id uuid.UUID, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("invalid contact status %q", status)
	}

	res, err := db.Exec(`UPDATE contacts SET status = ?, updated_at = ? WHERE id = ?`, status, time.Now(), id.String())
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contact %s not found", id)
	}
	return nil
}

// DeleteContact removes a contact and detaches its opportunities, which then
// display as "Unknown".
func DeleteContact(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if _, err := tx.Exec(`UPDATE opportunities SET contact_id = NULL WHERE contact_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to update opportunities: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM contacts WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return tx.Commit()
}
