// ABOUTME: Opportunity MCP tool handlers
// ABOUTME: Implements add_opportunity and pipeline_summary
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

type OpportunityHandlers struct {
	db *sql.DB
}

func NewOpportunityHandlers(database *sql.DB) *OpportunityHandlers {
	return &OpportunityHandlers{db: database}
}

type AddOpportunityInput struct {
	Title       string  `json:"title" jsonschema:"Opportunity title (required)"`
	ContactID   string  `json:"contact_id,omitempty" jsonschema:"UUID of the contact this opportunity belongs to"`
	Value       float64 `json:"value,omitempty" jsonschema:"Deal value in dollars"`
	Stage       string  `json:"stage,omitempty" jsonschema:"prospecting, qualification, proposal, negotiation, closed-won or closed-lost (default prospecting)"`
	Probability int     `json:"probability,omitempty" jsonschema:"Win probability 0-100"`
	CloseDate   string  `json:"close_date,omitempty" jsonschema:"Expected close date (YYYY-MM-DD)"`
	Notes       string  `json:"notes,omitempty"`
}

type OpportunityOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ContactID   *string `json:"contact_id,omitempty"`
	ContactName string  `json:"contact_name"`
	Value       float64 `json:"value"`
	Stage       string  `json:"stage"`
	Probability int     `json:"probability"`
	CloseDate   *string `json:"close_date,omitempty"`
}

func (h *OpportunityHandlers) AddOpportunity(_ context.Context, _ *mcp.CallToolRequest, input AddOpportunityInput) (*mcp.CallToolResult, OpportunityOutput, error) {
	if input.Title == "" {
		return nil, OpportunityOutput{}, fmt.Errorf("title is required")
	}

	opp := &models.Opportunity{
		Title:       input.Title,
		Value:       input.Value,
		Stage:       input.Stage,
		Probability: input.Probability,
		Notes:       input.Notes,
	}

	var contact *models.Contact
	if input.ContactID != "" {
		cid, err := uuid.Parse(input.ContactID)
		if err != nil {
			return nil, OpportunityOutput{}, fmt.Errorf("invalid contact_id: %w", err)
		}
		contact, err = db.GetContact(h.db, cid)
		if err != nil {
			return nil, OpportunityOutput{}, fmt.Errorf("failed to lookup contact: %w", err)
		}
		if contact == nil {
			return nil, OpportunityOutput{}, fmt.Errorf("contact not found: %s", input.ContactID)
		}
		opp.ContactID = &cid
	}

	if input.CloseDate != "" {
		d, err := time.Parse("2006-01-02", input.CloseDate)
		if err != nil {
			return nil, OpportunityOutput{}, fmt.Errorf("invalid close_date: %w", err)
		}
		opp.CloseDate = &d
	}

	if err := db.CreateOpportunity(h.db, opp); err != nil {
		return nil, OpportunityOutput{}, err
	}

	name := crm.UnknownContact
	if contact != nil {
		name = contact.Name
	}
	return nil, opportunityToOutput(opp, name), nil
}

type PipelineSummaryInput struct {
	Stage string `json:"stage,omitempty" jsonschema:"Only include this stage"`
}

type PipelineSummaryOutput struct {
	Summary       crm.Summary         `json:"summary"`
	ByStage       []crm.StageStats    `json:"by_stage"`
	Opportunities []OpportunityOutput `json:"opportunities"`
}

func (h *OpportunityHandlers) PipelineSummary(_ context.Context, _ *mcp.CallToolRequest, input PipelineSummaryInput) (*mcp.CallToolResult, PipelineSummaryOutput, error) {
	opps, err := db.ListOpportunities(h.db, input.Stage)
	if err != nil {
		return nil, PipelineSummaryOutput{}, fmt.Errorf("failed to list opportunities: %w", err)
	}
	contacts, err := db.ListContacts(h.db)
	if err != nil {
		return nil, PipelineSummaryOutput{}, fmt.Errorf("failed to list contacts: %w", err)
	}

	idx := crm.NewContactIndex(contacts)
	out := PipelineSummaryOutput{
		Summary:       crm.AggregateOpportunities(opps),
		ByStage:       crm.PipelineByStage(opps),
		Opportunities: make([]OpportunityOutput, len(opps)),
	}
	for i := range opps {
		out.Opportunities[i] = opportunityToOutput(&opps[i], idx.Name(opps[i].ContactID))
	}

	return nil, out, nil
}

func opportunityToOutput(o *models.Opportunity, contactName string) OpportunityOutput {
	out := OpportunityOutput{
		ID:          o.ID.String(),
		Title:       o.Title,
		ContactName: contactName,
		Value:       o.Value,
		Stage:       o.Stage,
		Probability: o.Probability,
	}
	if o.ContactID != nil {
		s := o.ContactID.String()
		out.ContactID = &s
	}
	if o.CloseDate != nil {
		s := o.CloseDate.Format("2006-01-02")
		out.CloseDate = &s
	}
	return out
}
