// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_graph and dashboard_report tools for agents
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/viz"
)

type VizHandlers struct {
	db       *sql.DB
	identity models.Identity
}

func NewVizHandlers(database *sql.DB, identity models.Identity) *VizHandlers {
	return &VizHandlers{db: database, identity: identity}
}

type GenerateGraphInput struct {
	ContactID string `json:"contact_id,omitempty" jsonschema:"Only draw this contact's opportunities"`
}

type GenerateGraphOutput struct {
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(ctx context.Context, _ *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	var contactID *uuid.UUID
	if input.ContactID != "" {
		id, err := uuid.Parse(input.ContactID)
		if err != nil {
			return nil, GenerateGraphOutput{}, fmt.Errorf("invalid contact_id: %w", err)
		}
		contactID = &id
	}

	g, err := viz.NewGraphGenerator(h.db).GeneratePipelineGraph(ctx, contactID)
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return nil, GenerateGraphOutput{DOTSource: g.DOT, NodeCount: g.Nodes, EdgeCount: g.Edges}, nil
}

type DashboardReportInput struct{}

type DashboardReportOutput struct {
	Report string `json:"report"`
}

func (h *VizHandlers) DashboardReport(_ context.Context, _ *mcp.CallToolRequest, _ DashboardReportInput) (*mcp.CallToolResult, DashboardReportOutput, error) {
	stats, err := viz.GenerateDashboardStats(h.db, h.identity.UserID, time.Now())
	if err != nil {
		return nil, DashboardReportOutput{}, err
	}
	return nil, DashboardReportOutput{Report: viz.RenderDashboard(stats)}, nil
}
