// ABOUTME: MCP prompt handlers for reusable dashboard workflow templates
// ABOUTME: Builds pipeline review, contact follow-up and mention triage prompts from stored data
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/nps"
)

// mentionTriageLimit caps how many recent mentions go into a triage prompt.
const mentionTriageLimit = 20

type PromptHandlers struct {
	db       *sql.DB
	identity models.Identity
}

func NewPromptHandlers(database *sql.DB, identity models.Identity) *PromptHandlers {
	return &PromptHandlers{db: database, identity: identity}
}

// Prompts lists the templates GetPrompt understands.
func Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "pipeline-review",
			Description: "Review the sales pipeline and NPS health",
		},
		{
			Name:        "contact-followup",
			Description: "Draft follow-up actions for a contact",
			Arguments: []*mcp.PromptArgument{
				{Name: "contact_id", Description: "Contact UUID", Required: true},
			},
		},
		{
			Name:        "mention-triage",
			Description: "Triage recent brand mentions by sentiment and reach",
		},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "pipeline-review":
		return h.getPipelineReviewPrompt()
	case "contact-followup":
		return h.getContactFollowupPrompt(request.Params.Arguments)
	case "mention-triage":
		return h.getMentionTriagePrompt()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}

func (h *PromptHandlers) getPipelineReviewPrompt() (*mcp.GetPromptResult, error) {
	opps, err := db.ListOpportunities(h.db, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}
	contacts, err := db.ListContacts(h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	responses, err := db.ListNPSResponses(h.db)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nps responses: %w", err)
	}

	summary := crm.AggregateOpportunities(opps)
	score := nps.Compute(responses)
	idx := crm.NewContactIndex(contacts)

	var b strings.Builder
	b.WriteString("Please review this sales pipeline:\n\n")
	fmt.Fprintf(&b, "Opportunities: %d\n", summary.Count)
	fmt.Fprintf(&b, "Total value: $%.0f\n", summary.Total)
	fmt.Fprintf(&b, "Weighted value: $%.0f\n", summary.Weighted)
	fmt.Fprintf(&b, "Average probability: %.1f%%\n", summary.AvgProbability)

	b.WriteString("\nBy stage:\n")
	for _, st := range crm.PipelineByStage(opps) {
		fmt.Fprintf(&b, "- %s: %d ($%.0f)\n", st.Stage, st.Count, st.Value)
	}

	if len(opps) > 0 {
		b.WriteString("\nOpen deals:\n")
		for _, o := range opps {
			fmt.Fprintf(&b, "- %s with %s, $%.0f at %d%% (%s)\n", o.Title, idx.Name(o.ContactID), o.Value, o.Probability, o.Stage)
		}
	}

	if score.Total > 0 {
		fmt.Fprintf(&b, "\nNPS: %d from %d responses (%d promoters, %d detractors)\n",
			score.Score, score.Total, score.Promoters, score.Detractors)
	}

	b.WriteString("\nPlease provide:")
	b.WriteString("\n1. Which deals need attention this week")
	b.WriteString("\n2. Risks to the weighted forecast")
	b.WriteString("\n3. How customer sentiment may affect close rates")

	return userPrompt("Pipeline review", b.String()), nil
}

func (h *PromptHandlers) getContactFollowupPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	idStr, ok := args["contact_id"]
	if !ok {
		return nil, fmt.Errorf("contact_id is required")
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid contact_id: %w", err)
	}

	contact, err := db.GetContact(h.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact: %w", err)
	}
	if contact == nil {
		return nil, fmt.Errorf("contact not found: %s", idStr)
	}

	opps, err := db.ListOpportunities(h.db, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}

	var b strings.Builder
	b.WriteString("Please suggest follow-up actions for this contact:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", contact.Name)
	if contact.Role != "" || contact.Company != "" {
		fmt.Fprintf(&b, "Role: %s at %s\n", contact.Role, contact.Company)
	}
	fmt.Fprintf(&b, "Status: %s\n", contact.Status)
	if contact.LastContact != nil {
		fmt.Fprintf(&b, "Last contacted: %s\n", contact.LastContact.Format("2006-01-02"))
	}
	if contact.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", contact.Source)
	}

	for _, o := range opps {
		if o.ContactID != nil && *o.ContactID == id {
			fmt.Fprintf(&b, "Opportunity: %s, $%.0f in %s at %d%%\n", o.Title, o.Value, o.Stage, o.Probability)
		}
	}
	if contact.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", contact.Notes)
	}

	b.WriteString("\nPlease provide:")
	b.WriteString("\n1. The next best action and when to take it")
	b.WriteString("\n2. A short outreach message")

	return userPrompt(fmt.Sprintf("Follow-up for %s", contact.Name), b.String()), nil
}

func (h *PromptHandlers) getMentionTriagePrompt() (*mcp.GetPromptResult, error) {
	mentions, err := db.ListMentions(h.db, h.identity.UserID, mentionTriageLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mentions: %w", err)
	}

	var b strings.Builder
	if len(mentions) == 0 {
		b.WriteString("There are no stored brand mentions yet. Suggest which keywords and platforms to start monitoring.")
		return userPrompt("Mention triage", b.String()), nil
	}

	b.WriteString("Please triage these recent brand mentions:\n\n")
	for _, m := range mentions {
		fmt.Fprintf(&b, "- [%s] %s (%s, score %.2f, reach %d): %s\n",
			m.Platform, m.Author, m.SentimentLabel, m.Sentiment, m.Reach, m.Content)
	}

	b.WriteString("\nPlease provide:")
	b.WriteString("\n1. Mentions that need a reply, most urgent first")
	b.WriteString("\n2. Any sign of an emerging crisis")

	return userPrompt("Mention triage", b.String()), nil
}
