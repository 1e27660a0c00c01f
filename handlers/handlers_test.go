// ABOUTME: Tests for the MCP tool handlers
// ABOUTME: Exercises contacts, pipeline, NPS, widgets, copilot and monitoring tools against a temp database
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/copilot"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/nps"
	pulsesync "github.com/harperreed/socialpulse/sync"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func seededDB(t *testing.T) *sql.DB {
	t.Helper()
	database := setupTestDB(t)
	require.NoError(t, db.Seed(database))
	return database
}

var testIdentity = models.Identity{UserID: "user-1", Email: "user@example.com"}

func TestAddContactHandler(t *testing.T) {
	h := NewContactHandlers(setupTestDB(t))
	ctx := context.Background()

	_, out, err := h.AddContact(ctx, nil, AddContactInput{Name: "John Doe", Company: "Acme", Status: models.StatusWarm})
	require.NoError(t, err)
	assert.Equal(t, "John Doe", out.Name)
	assert.Equal(t, models.StatusWarm, out.Status)
	_, err = uuid.Parse(out.ID)
	assert.NoError(t, err)

	_, out, err = h.AddContact(ctx, nil, AddContactInput{Name: "No Status"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCold, out.Status)

	_, _, err = h.AddContact(ctx, nil, AddContactInput{})
	assert.Error(t, err)

	_, _, err = h.AddContact(ctx, nil, AddContactInput{Name: "Bad", Status: "lukewarm"})
	assert.Error(t, err)
}

func TestFindContactsHandler(t *testing.T) {
	h := NewContactHandlers(seededDB(t))
	ctx := context.Background()

	_, out, err := h.FindContacts(ctx, nil, FindContactsInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Count)

	_, out, err = h.FindContacts(ctx, nil, FindContactsInput{Query: "corp", Status: models.StatusHot})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "Sarah Johnson", out.Contacts[0].Name)
	require.NotNil(t, out.Contacts[0].LastContact)
	assert.Equal(t, "2024-01-15", *out.Contacts[0].LastContact)

	_, out, err = h.FindContacts(ctx, nil, FindContactsInput{Query: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count)
	assert.NotNil(t, out.Contacts)
}

func TestUpdateContactStatusHandler(t *testing.T) {
	database := seededDB(t)
	h := NewContactHandlers(database)
	ctx := context.Background()

	_, found, err := h.FindContacts(ctx, nil, FindContactsInput{Query: "Mike"})
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)

	_, out, err := h.UpdateContactStatus(ctx, nil, UpdateContactStatusInput{ID: found.Contacts[0].ID, Status: models.StatusHot})
	require.NoError(t, err)
	assert.Equal(t, models.StatusHot, out.Status)

	_, _, err = h.UpdateContactStatus(ctx, nil, UpdateContactStatusInput{ID: "not-a-uuid", Status: models.StatusHot})
	assert.Error(t, err)

	_, _, err = h.UpdateContactStatus(ctx, nil, UpdateContactStatusInput{ID: uuid.New().String(), Status: models.StatusHot})
	assert.Error(t, err)
}

func TestPipelineSummaryHandler(t *testing.T) {
	h := NewOpportunityHandlers(seededDB(t))
	ctx := context.Background()

	_, out, err := h.PipelineSummary(ctx, nil, PipelineSummaryInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Summary.Count)
	assert.Equal(t, 140000.0, out.Summary.Total)
	assert.InDelta(t, 160.0/3.0, out.Summary.AvgProbability, 1e-9)
	assert.Len(t, out.ByStage, 3)

	names := map[string]string{}
	for _, o := range out.Opportunities {
		names[o.Title] = o.ContactName
	}
	assert.Equal(t, "Sarah Johnson", names["Enterprise License - TechCorp"])

	_, out, err = h.PipelineSummary(ctx, nil, PipelineSummaryInput{Stage: models.StageProposal})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Summary.Count)
	assert.Equal(t, 50000.0, out.Summary.Total)
}

func TestPipelineSummaryEmpty(t *testing.T) {
	h := NewOpportunityHandlers(setupTestDB(t))
	_, out, err := h.PipelineSummary(context.Background(), nil, PipelineSummaryInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Summary.Count)
	assert.Equal(t, 0.0, out.Summary.AvgProbability)
}

func TestAddOpportunityHandler(t *testing.T) {
	database := setupTestDB(t)
	contacts := NewContactHandlers(database)
	h := NewOpportunityHandlers(database)
	ctx := context.Background()

	_, c, err := contacts.AddContact(ctx, nil, AddContactInput{Name: "Ada"})
	require.NoError(t, err)

	_, out, err := h.AddOpportunity(ctx, nil, AddOpportunityInput{
		Title:       "Pilot",
		ContactID:   c.ID,
		Value:       1200,
		Probability: 40,
		CloseDate:   "2024-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.ContactName)
	assert.Equal(t, models.StageProspecting, out.Stage)
	require.NotNil(t, out.CloseDate)
	assert.Equal(t, "2024-05-01", *out.CloseDate)

	_, out, err = h.AddOpportunity(ctx, nil, AddOpportunityInput{Title: "Orphan"})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", out.ContactName)

	_, _, err = h.AddOpportunity(ctx, nil, AddOpportunityInput{Title: "Ghost", ContactID: uuid.New().String()})
	assert.Error(t, err)

	_, _, err = h.AddOpportunity(ctx, nil, AddOpportunityInput{Title: "Bad date", CloseDate: "May 1st"})
	assert.Error(t, err)

	_, _, err = h.AddOpportunity(ctx, nil, AddOpportunityInput{})
	assert.Error(t, err)
}

func TestNPSHandlers(t *testing.T) {
	h := NewNPSHandlers(seededDB(t))
	ctx := context.Background()

	_, summary, err := h.NPSSummary(ctx, nil, NPSSummaryInput{})
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 83, summary.Score)

	_, out, err := h.SubmitNPS(ctx, nil, SubmitNPSInput{Score: 2, Feedback: "slow", Source: "Email"})
	require.NoError(t, err)
	assert.Equal(t, nps.Detractor, out.Class)

	_, _, err = h.SubmitNPS(ctx, nil, SubmitNPSInput{Score: 11})
	assert.ErrorIs(t, err, nps.ErrScoreOutOfRange)

	_, summary, err = h.NPSSummary(ctx, nil, NPSSummaryInput{})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.Detractors)
}

func TestWidgetHandlersPersist(t *testing.T) {
	database := setupTestDB(t)
	store := analytics.NewStore()
	h := NewWidgetHandlers(store, database)
	ctx := context.Background()

	_, added, err := h.AddWidget(ctx, nil, AddWidgetInput{Type: models.WidgetLine, Title: "Reach", Size: models.SizeLarge})
	require.NoError(t, err)
	require.True(t, added.Added)
	require.NotNil(t, added.Widget)

	loaded, err := db.LoadDashboards(database)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Len(t, loaded[0].Widgets, 4)
	assert.Equal(t, added.Widget.ID, loaded[0].Widgets[3].ID)

	_, removed, err := h.RemoveWidget(ctx, nil, RemoveWidgetInput{WidgetID: "w2"})
	require.NoError(t, err)
	assert.True(t, removed.Removed)

	loaded, err = db.LoadDashboards(database)
	require.NoError(t, err)
	assert.Len(t, loaded[0].Widgets, 3)

	_, listed, err := h.ListWidgets(ctx, nil, ListWidgetsInput{})
	require.NoError(t, err)
	assert.Equal(t, "Main Dashboard", listed.Dashboard.Name)
	assert.Len(t, listed.Dashboard.Widgets, 3)
}

func TestWidgetHandlersConcurrentAddsPersisted(t *testing.T) {
	database := setupTestDB(t)
	store := analytics.NewStore()
	h := NewWidgetHandlers(store, database)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, out, err := h.AddWidget(context.Background(), nil, AddWidgetInput{Type: models.WidgetPie, Title: fmt.Sprintf("Share %d", i)})
			assert.NoError(t, err)
			assert.True(t, out.Added)
		}(i)
	}
	wg.Wait()

	current, ok := store.Dashboard(analytics.DefaultDashboardID)
	require.True(t, ok)
	loaded, err := db.LoadDashboards(database)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Len(t, loaded[0].Widgets, len(current.Widgets))
	for i := range current.Widgets {
		assert.Equal(t, current.Widgets[i].ID, loaded[0].Widgets[i].ID)
	}
}

func TestWidgetHandlersNoops(t *testing.T) {
	h := NewWidgetHandlers(analytics.NewStore(), nil)
	ctx := context.Background()

	_, added, err := h.AddWidget(ctx, nil, AddWidgetInput{Type: models.WidgetMetric, Title: "  "})
	require.NoError(t, err)
	assert.False(t, added.Added)
	assert.Nil(t, added.Widget)

	_, _, err = h.AddWidget(ctx, nil, AddWidgetInput{Type: "radar", Title: "Radar"})
	assert.Error(t, err)

	_, removed, err := h.RemoveWidget(ctx, nil, RemoveWidgetInput{WidgetID: "w_missing"})
	require.NoError(t, err)
	assert.False(t, removed.Removed)

	_, _, err = h.ListWidgets(ctx, nil, ListWidgetsInput{DashboardID: "42"})
	assert.Error(t, err)
}

func TestAskCopilotHandler(t *testing.T) {
	h := NewCopilotHandlers(nil)
	ctx := context.Background()

	_, out, err := h.AskCopilot(ctx, nil, AskCopilotInput{Message: "Any crisis today?"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Reply)
	assert.NotEmpty(t, out.Intent)

	_, out, err = h.AskCopilot(ctx, nil, AskCopilotInput{Message: "xyz"})
	require.NoError(t, err)
	assert.Equal(t, copilot.DefaultResponse, out.Reply)
	assert.Empty(t, out.Intent)

	_, _, err = h.AskCopilot(ctx, nil, AskCopilotInput{Message: "   "})
	assert.Error(t, err)

	_, sugg, err := h.Suggestions(ctx, nil, SuggestionsInput{})
	require.NoError(t, err)
	assert.Equal(t, copilot.Suggestions(), sugg.Suggestions)
}

func TestMonitoringHandlers(t *testing.T) {
	database := setupTestDB(t)
	h := NewMonitoringHandlers(database, testIdentity, nil)
	ctx := context.Background()

	_, res, err := h.AnalyzeSentiment(ctx, nil, AnalyzeSentimentInput{Text: "I love this, amazing"})
	require.NoError(t, err)
	assert.Equal(t, "positive", res.Label)

	_, mentions, err := h.FetchMentions(ctx, nil, FetchMentionsInput{Keywords: []string{"Acme"}})
	require.NoError(t, err)
	assert.Len(t, mentions.Mentions, 3)
	assert.Contains(t, mentions.Mentions[0].Content, "Acme")

	_, infs, err := h.DiscoverInfluencers(ctx, nil, DiscoverInfluencersInput{})
	require.NoError(t, err)
	assert.NotEmpty(t, infs.Influencers)

	anon := NewMonitoringHandlers(database, models.Identity{}, nil)
	_, _, err = anon.FetchMentions(ctx, nil, FetchMentionsInput{})
	assert.ErrorIs(t, err, pulsesync.ErrNotAuthenticated)
}

func TestVizHandlers(t *testing.T) {
	h := NewVizHandlers(seededDB(t), testIdentity)
	ctx := context.Background()

	_, report, err := h.DashboardReport(ctx, nil, DashboardReportInput{})
	require.NoError(t, err)
	assert.Contains(t, report.Report, "SOCIAL PULSE DASHBOARD")

	_, _, err = h.GenerateGraph(ctx, nil, GenerateGraphInput{ContactID: "nope"})
	assert.Error(t, err)
}
