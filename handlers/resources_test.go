// ABOUTME: Tests for MCP resources and prompts
// ABOUTME: Reads pulse:// URIs and renders each prompt template against seeded data
package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/socialpulse/analytics"
	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/models"
)

func readResource(t *testing.T, h *ResourceHandlers, uri string) (*mcp.ReadResourceResult, error) {
	t.Helper()
	return h.ReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	})
}

func TestReadContactsResource(t *testing.T) {
	h := NewResourceHandlers(seededDB(t), analytics.NewStore())

	res, err := readResource(t, h, "pulse://contacts")
	require.NoError(t, err)
	var contacts []models.Contact
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &contacts))
	assert.Len(t, contacts, 3)

	sarah := crm.SampleContacts()[0]
	res, err = readResource(t, h, "pulse://contacts/"+sarah.ID.String())
	require.NoError(t, err)
	var detail struct {
		Name          string              `json:"name"`
		Opportunities []OpportunityOutput `json:"opportunities"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &detail))
	assert.Equal(t, "Sarah Johnson", detail.Name)
	require.Len(t, detail.Opportunities, 1)
	assert.Equal(t, 50000.0, detail.Opportunities[0].Value)
}

func TestReadResourceErrors(t *testing.T) {
	h := NewResourceHandlers(seededDB(t), analytics.NewStore())

	_, err := readResource(t, h, "crm://contacts")
	assert.Error(t, err)

	_, err = readResource(t, h, "pulse://companies")
	assert.Error(t, err)

	_, err = readResource(t, h, "pulse://contacts/not-a-uuid")
	assert.Error(t, err)

	_, err = readResource(t, h, "pulse://contacts/00000000-0000-0000-0000-000000000000")
	assert.Error(t, err)
}

func TestReadDashboardsAndNPSResources(t *testing.T) {
	h := NewResourceHandlers(seededDB(t), analytics.NewStore())

	res, err := readResource(t, h, "pulse://dashboards")
	require.NoError(t, err)
	var dashboards []models.Dashboard
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &dashboards))
	require.Len(t, dashboards, 1)
	assert.Len(t, dashboards[0].Widgets, 3)

	res, err = readResource(t, h, "pulse://nps")
	require.NoError(t, err)
	assert.Contains(t, res.Contents[0].Text, `"score": 83`)

	res, err = readResource(t, h, "pulse://opportunities")
	require.NoError(t, err)
	assert.Equal(t, "pulse://opportunities", res.Contents[0].URI)
}

func getPrompt(t *testing.T, h *PromptHandlers, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	t.Helper()
	return h.GetPrompt(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: name, Arguments: args},
	})
}

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestContactFollowupPrompt(t *testing.T) {
	h := NewPromptHandlers(seededDB(t), testIdentity)
	mike := crm.SampleContacts()[1]

	res, err := getPrompt(t, h, "contact-followup", map[string]string{"contact_id": mike.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Follow-up for Mike Chen", res.Description)
	text := promptText(t, res)
	assert.Contains(t, text, "Status: warm")
	assert.Contains(t, text, "Startup Package - StartupX")

	_, err = getPrompt(t, h, "contact-followup", nil)
	assert.Error(t, err)

	_, err = getPrompt(t, h, "no-such-prompt", nil)
	assert.Error(t, err)
}

func TestMentionTriagePrompt(t *testing.T) {
	database := seededDB(t)
	h := NewPromptHandlers(database, testIdentity)

	res, err := getPrompt(t, h, "mention-triage", nil)
	require.NoError(t, err)
	assert.Contains(t, promptText(t, res), "no stored brand mentions")

	monitoring := NewMonitoringHandlers(database, testIdentity, nil)
	_, _, err = monitoring.FetchMentions(context.Background(), nil, FetchMentionsInput{Keywords: []string{"Acme"}})
	require.NoError(t, err)

	res, err = getPrompt(t, h, "mention-triage", nil)
	require.NoError(t, err)
	text := promptText(t, res)
	assert.Contains(t, text, "tech_reviewer_23")
	assert.Contains(t, text, "negative")
}
