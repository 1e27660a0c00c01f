// ABOUTME: Dashboard tab: widget grid plus the pipeline/NPS/mention summary
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/viz"
)

func (m Model) renderDashboardView() string {
	var s strings.Builder

	if d, ok := m.store.Dashboard(analytics.DefaultDashboardID); ok {
		s.WriteString(viz.RenderWidgets(d))
		s.WriteString("\n")
	}

	stats, err := viz.GenerateDashboardStats(m.db, m.identity.UserID, time.Now())
	if err != nil {
		s.WriteString(m.theme.bad.Render("Error: " + err.Error()))
	} else {
		s.WriteString(viz.RenderDashboard(stats))
	}

	s.WriteString(m.renderHelp())
	return s.String()
}

func (m Model) handleDashboardKeys(_ tea.KeyMsg) (tea.Model, tea.Cmd) {
	return m, nil
}
