// ABOUTME: Dashboard widget MCP tool handlers
// ABOUTME: Implements add_widget, remove_widget and list_widgets; changes are persisted when a db is set
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
)

type WidgetHandlers struct {
	store *analytics.Store
	db    *sql.DB
}

// NewWidgetHandlers wraps store. database may be nil to keep changes in memory.
func NewWidgetHandlers(store *analytics.Store, database *sql.DB) *WidgetHandlers {
	return &WidgetHandlers{store: store, db: database}
}

type AddWidgetInput struct {
	DashboardID string `json:"dashboard_id,omitempty" jsonschema:"Dashboard id (default 1, the main dashboard)"`
	Type        string `json:"type" jsonschema:"metric, bar, pie or line"`
	Title       string `json:"title" jsonschema:"Widget title (required)"`
	Size        string `json:"size,omitempty" jsonschema:"small, medium or large (default medium)"`
}

type AddWidgetOutput struct {
	Added  bool           `json:"added"`
	Widget *models.Widget `json:"widget,omitempty"`
}

func dashboardOrDefault(id string) string {
	if id == "" {
		return analytics.DefaultDashboardID
	}
	return id
}

// AddWidget reports added=false instead of failing for a blank title.
func (h *WidgetHandlers) AddWidget(_ context.Context, _ *mcp.CallToolRequest, input AddWidgetInput) (*mcp.CallToolResult, AddWidgetOutput, error) {
	if !models.IsValidWidgetType(input.Type) {
		return nil, AddWidgetOutput{}, fmt.Errorf("invalid widget type %q", input.Type)
	}

	w, ok := h.store.AddWidget(dashboardOrDefault(input.DashboardID), analytics.WidgetSpec{
		Type:  input.Type,
		Title: input.Title,
		Size:  input.Size,
	})
	if !ok {
		return nil, AddWidgetOutput{Added: false}, nil
	}
	if err := h.persist(); err != nil {
		return nil, AddWidgetOutput{}, err
	}
	return nil, AddWidgetOutput{Added: true, Widget: &w}, nil
}

type RemoveWidgetInput struct {
	DashboardID string `json:"dashboard_id,omitempty" jsonschema:"Dashboard id (default 1)"`
	WidgetID    string `json:"widget_id" jsonschema:"Id of the widget to remove"`
}

type RemoveWidgetOutput struct {
	Removed bool `json:"removed"`
}

func (h *WidgetHandlers) RemoveWidget(_ context.Context, _ *mcp.CallToolRequest, input RemoveWidgetInput) (*mcp.CallToolResult, RemoveWidgetOutput, error) {
	removed := h.store.RemoveWidget(dashboardOrDefault(input.DashboardID), input.WidgetID)
	if removed {
		if err := h.persist(); err != nil {
			return nil, RemoveWidgetOutput{}, err
		}
	}
	return nil, RemoveWidgetOutput{Removed: removed}, nil
}

type ListWidgetsInput struct {
	DashboardID string `json:"dashboard_id,omitempty" jsonschema:"Dashboard id (default 1)"`
}

type ListWidgetsOutput struct {
	Dashboard models.Dashboard `json:"dashboard"`
}

func (h *WidgetHandlers) ListWidgets(_ context.Context, _ *mcp.CallToolRequest, input ListWidgetsInput) (*mcp.CallToolResult, ListWidgetsOutput, error) {
	d, ok := h.store.Dashboard(dashboardOrDefault(input.DashboardID))
	if !ok {
		return nil, ListWidgetsOutput{}, fmt.Errorf("dashboard not found: %s", input.DashboardID)
	}
	return nil, ListWidgetsOutput{Dashboard: d}, nil
}

func (h *WidgetHandlers) persist() error {
	if h.db == nil {
		return nil
	}
	err := h.store.Save(func(dashboards []models.Dashboard) error {
		return db.SaveDashboards(h.db, dashboards)
	})
	if err != nil {
		return fmt.Errorf("failed to save dashboards: %w", err)
	}
	return nil
}
