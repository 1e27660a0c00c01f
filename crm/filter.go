// ABOUTME: Contact filtering and lookup for CRM views
// ABOUTME: Pure functions over in-memory contact slices; inputs are never mutated
package crm

import (
	"strings"

	"github.com/google/uuid"

	"github.com/harperreed/socialpulse/models"
)

// UnknownContact is displayed when an opportunity points at a missing contact.
const UnknownContact = "Unknown"

// FilterContacts returns the contacts whose name or company contains
// searchTerm (case-insensitive) and whose status matches statusFilter.
// An empty searchTerm matches everything; "all" or "" matches any status.
// The result keeps the input order.
func FilterContacts(contacts []models.Contact, searchTerm, statusFilter string) []models.Contact {
	term := strings.ToLower(searchTerm)
	result := make([]models.Contact, 0, len(contacts))

	for _, c := range contacts {
		matchesSearch := strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Company), term)
		matchesStatus := statusFilter == "" || statusFilter == models.StatusAll || c.Status == statusFilter

		if matchesSearch && matchesStatus {
			result = append(result, c)
		}
	}

	return result
}

// ContactIndex resolves contact ids to display names.
type ContactIndex struct {
	byID map[uuid.UUID]*models.Contact
}

// NewContactIndex indexes contacts by id.
func NewContactIndex(contacts []models.Contact) *ContactIndex {
	idx := &ContactIndex{byID: make(map[uuid.UUID]*models.Contact, len(contacts))}
	for i := range contacts {
		idx.byID[contacts[i].ID] = &contacts[i]
	}
	return idx
}

// Lookup returns the contact for id, if present.
func (idx *ContactIndex) Lookup(id *uuid.UUID) (*models.Contact, bool) {
	if id == nil {
		return nil, false
	}
	c, ok := idx.byID[*id]
	return c, ok
}

// Name returns the contact name for id, or UnknownContact.
func (idx *ContactIndex) Name(id *uuid.UUID) string {
	if c, ok := idx.Lookup(id); ok {
		return c.Name
	}
	return UnknownContact
}

// ContactName is a one-shot lookup for callers that don't keep an index.
func ContactName(contacts []models.Contact, id *uuid.UUID) string {
	if id == nil {
		return UnknownContact
	}
	for _, c := range contacts {
		if c.ID == *id {
			return c.Name
		}
	}
	return UnknownContact
}
