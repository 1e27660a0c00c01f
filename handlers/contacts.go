// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts and update_contact_status
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

type ContactHandlers struct {
	db *sql.DB
}

func NewContactHandlers(database *sql.DB) *ContactHandlers {
	return &ContactHandlers{db: database}
}

type AddContactInput struct {
	Name    string `json:"name" jsonschema:"Contact name (required)"`
	Email   string `json:"email,omitempty" jsonschema:"Contact email address"`
	Phone   string `json:"phone,omitempty" jsonschema:"Contact phone number"`
	Company string `json:"company,omitempty" jsonschema:"Company name"`
	Role    string `json:"role,omitempty" jsonschema:"Job title"`
	Status  string `json:"status,omitempty" jsonschema:"Lead temperature: hot, warm or cold (default cold)"`
	Source  string `json:"source,omitempty" jsonschema:"Where the lead came from, e.g. LinkedIn or Referral"`
	Notes   string `json:"notes,omitempty" jsonschema:"Additional notes about the contact"`
}

type ContactOutput struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Company     string  `json:"company,omitempty"`
	Role        string  `json:"role,omitempty"`
	Status      string  `json:"status"`
	Source      string  `json:"source,omitempty"`
	LastContact *string `json:"last_contact,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func (h *ContactHandlers) AddContact(_ context.Context, _ *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}

	contact := &models.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Role:    input.Role,
		Status:  input.Status,
		Source:  input.Source,
		Notes:   input.Notes,
	}

	if err := db.CreateContact(h.db, contact); err != nil {
		return nil, ContactOutput{}, err
	}

	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Case-insensitive search over name and company"`
	Status string `json:"status,omitempty" jsonschema:"hot, warm, cold or all (default all)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Count    int             `json:"count"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	contacts, err := db.ListContacts(h.db)
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}

	filtered := crm.FilterContacts(contacts, input.Query, input.Status)
	result := make([]ContactOutput, len(filtered))
	for i := range filtered {
		result[i] = contactToOutput(&filtered[i])
	}

	return nil, FindContactsOutput{Contacts: result, Count: len(result)}, nil
}

type UpdateContactStatusInput struct {
	ID     string `json:"id" jsonschema:"Contact UUID (required)"`
	Status string `json:"status" jsonschema:"New status: hot, warm or cold (required)"`
}

func (h *ContactHandlers) UpdateContactStatus(_ context.Context, _ *mcp.CallToolRequest, input UpdateContactStatusInput) (*mcp.CallToolResult, ContactOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("invalid id: %w", err)
	}

	if err := db.UpdateContactStatus(h.db, id, input.Status); err != nil {
		return nil, ContactOutput{}, err
	}

	contact, err := db.GetContact(h.db, id)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to reload contact: %w", err)
	}
	if contact == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact not found: %s", input.ID)
	}

	return nil, contactToOutput(contact), nil
}

func contactToOutput(c *models.Contact) ContactOutput {
	out := ContactOutput{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Role:      c.Role,
		Status:    c.Status,
		Source:    c.Source,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if c.LastContact != nil {
		s := c.LastContact.Format("2006-01-02")
		out.LastContact = &s
	}
	return out
}
