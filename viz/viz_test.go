// ABOUTME: Tests for dashboard stats, text widgets and the pipeline graph
package viz

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/nps"
)

func TestComputeDashboardStats(t *testing.T) {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	mentions := []models.Mention{
		{SentimentLabel: models.SentimentPositive},
		{SentimentLabel: models.SentimentPositive},
		{SentimentLabel: models.SentimentNegative},
	}

	stats := ComputeDashboardStats(crm.SampleContacts(), crm.SampleOpportunities(), nps.SampleResponses(), mentions, now)

	assert.Equal(t, 3, stats.TotalContacts)
	assert.Equal(t, 1, stats.ContactsByStatus[models.StatusHot])
	assert.Equal(t, 140000.0, stats.Opportunities.Total)
	assert.Equal(t, 83, stats.NPS.Score)
	assert.Equal(t, 2, stats.MentionSentiment[models.SentimentPositive])
	require.Len(t, stats.Pipeline, 3)
	assert.Empty(t, stats.StaleContacts)

	later := now.Add(60 * 24 * time.Hour)
	stats = ComputeDashboardStats(crm.SampleContacts(), nil, nil, nil, later)
	assert.Len(t, stats.StaleContacts, 3)
	assert.Equal(t, 0.0, stats.Opportunities.AvgProbability)
	assert.Equal(t, 0, stats.NPS.Score)
}

func TestRenderDashboard(t *testing.T) {
	stats := ComputeDashboardStats(crm.SampleContacts(), crm.SampleOpportunities(), nps.SampleResponses(), nil, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	out := RenderDashboard(stats)

	assert.Contains(t, out, "SOCIAL PULSE DASHBOARD")
	assert.Contains(t, out, "proposal")
	assert.Contains(t, out, "$140K")
	assert.Contains(t, out, "score 83")
	assert.NotContains(t, out, "MENTIONS")
}

func TestRenderDashboardEmpty(t *testing.T) {
	out := RenderDashboard(ComputeDashboardStats(nil, nil, nil, nil, time.Now()))
	assert.Contains(t, out, "(no opportunities)")
	assert.NotContains(t, out, "NaN")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", bar(5, 10, 10))
	assert.Equal(t, "░░░░░░░░░░", bar(0, 0, 10))
	assert.Equal(t, "██████████", bar(20.0, 10.0, 10))
}

func TestRenderWidgets(t *testing.T) {
	d := analytics.DefaultDashboard()
	d.Widgets = append(d.Widgets, models.Widget{
		ID: "w_line", Type: models.WidgetLine, Title: "Reach", Size: models.SizeLarge,
		Data: []models.DataPoint{{Name: "Jan", Value: 100}, {Name: "May", Value: 180}},
	})

	out := RenderWidgets(d)
	assert.Contains(t, out, "MAIN DASHBOARD (4 widgets)")
	assert.Contains(t, out, "24891")
	assert.Contains(t, out, "Twitter")
	assert.Contains(t, out, "Joy")
	assert.Contains(t, out, "Jan→May")

	// widgets render in insertion order
	assert.Less(t, strings.Index(out, "Total Mentions"), strings.Index(out, "Emotion Distribution"))
}

func TestRenderWidgetUnknownType(t *testing.T) {
	out := RenderWidget(models.Widget{ID: "w_x", Type: "radar", Title: "Odd", Size: "huge"})
	assert.Contains(t, out, "unsupported widget type")
}

func TestRenderPipelineGraph(t *testing.T) {
	g, err := RenderPipelineGraph(context.Background(), crm.SampleContacts(), crm.SampleOpportunities())
	require.NoError(t, err)
	assert.Contains(t, g.DOT, "Sarah Johnson")
	assert.Contains(t, g.DOT, "Enterprise License - TechCorp")
	assert.Contains(t, g.DOT, "stage_proposal")
	// 3 contacts, 3 stages, 3 opportunities
	assert.Equal(t, 9, g.Nodes)
	assert.Equal(t, 6, g.Edges)
}
