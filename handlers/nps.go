// ABOUTME: NPS MCP tool handlers
// ABOUTME: Implements submit_nps and nps_summary
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/nps"
)

type NPSHandlers struct {
	db *sql.DB
}

func NewNPSHandlers(database *sql.DB) *NPSHandlers {
	return &NPSHandlers{db: database}
}

type SubmitNPSInput struct {
	Score    int    `json:"score" jsonschema:"Rating from 0 to 10 (required)"`
	Feedback string `json:"feedback,omitempty" jsonschema:"Free-text comment"`
	Source   string `json:"source,omitempty" jsonschema:"Channel, e.g. Email, In-app or SMS"`
}

type SubmitNPSOutput struct {
	ID    string    `json:"id"`
	Score int       `json:"score"`
	Class nps.Class `json:"class"`
}

func (h *NPSHandlers) SubmitNPS(_ context.Context, _ *mcp.CallToolRequest, input SubmitNPSInput) (*mcp.CallToolResult, SubmitNPSOutput, error) {
	r := &models.NPSResponse{Score: input.Score, Feedback: input.Feedback, Source: input.Source}
	if err := db.CreateNPSResponse(h.db, r); err != nil {
		return nil, SubmitNPSOutput{}, err
	}
	return nil, SubmitNPSOutput{ID: r.ID.String(), Score: r.Score, Class: nps.Classify(r.Score)}, nil
}

type NPSSummaryInput struct{}

func (h *NPSHandlers) NPSSummary(_ context.Context, _ *mcp.CallToolRequest, _ NPSSummaryInput) (*mcp.CallToolResult, nps.Summary, error) {
	responses, err := db.ListNPSResponses(h.db)
	if err != nil {
		return nil, nps.Summary{}, fmt.Errorf("failed to list nps responses: %w", err)
	}
	return nil, nps.Compute(responses), nil
}
