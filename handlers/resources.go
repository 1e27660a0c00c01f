// ABOUTME: MCP resource handlers for exposing dashboard data
// ABOUTME: Provides read-only access to contacts, pipeline, NPS and dashboards via pulse:// URIs
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/nps"
)

const ResourceScheme = "pulse://"

type ResourceHandlers struct {
	db    *sql.DB
	store *analytics.Store
}

func NewResourceHandlers(database *sql.DB, store *analytics.Store) *ResourceHandlers {
	return &ResourceHandlers{db: database, store: store}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, ResourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", ResourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, ResourceScheme), "/")

	switch parts[0] {
	case "contacts":
		if len(parts) == 1 || parts[1] == "" {
			return h.readAllContacts(uri)
		}
		return h.readContact(uri, parts[1])
	case "opportunities":
		return h.readOpportunities(uri)
	case "pipeline":
		return h.readPipeline(uri)
	case "nps":
		return h.readNPS(uri)
	case "dashboards":
		return h.readDashboards(uri)
	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}

func (h *ResourceHandlers) readAllContacts(uri string) (*mcp.ReadResourceResult, error) {
	contacts, err := db.ListContacts(h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	return jsonResource(uri, contacts)
}

func (h *ResourceHandlers) readContact(uri, idStr string) (*mcp.ReadResourceResult, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid contact ID: %w", err)
	}

	contact, err := db.GetContact(h.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact: %w", err)
	}
	if contact == nil {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	// Include the contact's opportunities
	opps, err := db.ListOpportunities(h.db, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}
	var owned []OpportunityOutput
	for i := range opps {
		if opps[i].ContactID != nil && *opps[i].ContactID == id {
			owned = append(owned, opportunityToOutput(&opps[i], contact.Name))
		}
	}

	return jsonResource(uri, struct {
		ContactOutput
		Opportunities []OpportunityOutput `json:"opportunities"`
	}{
		ContactOutput: contactToOutput(contact),
		Opportunities: owned,
	})
}

func (h *ResourceHandlers) readOpportunities(uri string) (*mcp.ReadResourceResult, error) {
	opps, err := db.ListOpportunities(h.db, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}
	return jsonResource(uri, opps)
}

func (h *ResourceHandlers) readPipeline(uri string) (*mcp.ReadResourceResult, error) {
	opps, err := db.ListOpportunities(h.db, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}

	return jsonResource(uri, struct {
		Summary crm.Summary      `json:"summary"`
		Stages  []crm.StageStats `json:"stages"`
	}{
		Summary: crm.AggregateOpportunities(opps),
		Stages:  crm.PipelineByStage(opps),
	})
}

func (h *ResourceHandlers) readNPS(uri string) (*mcp.ReadResourceResult, error) {
	responses, err := db.ListNPSResponses(h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nps responses: %w", err)
	}
	return jsonResource(uri, nps.Compute(responses))
}

func (h *ResourceHandlers) readDashboards(uri string) (*mcp.ReadResourceResult, error) {
	return jsonResource(uri, h.store.Dashboards())
}
