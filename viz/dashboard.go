// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Pipeline, contact heat, NPS, mention sentiment and widget panels as plain text
package viz

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/socialpulse/crm"
	"github.com/harperreed/socialpulse/db"
	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/nps"
)

// StaleAfterDays is how long a contact can go untouched before it needs attention.
const StaleAfterDays = 30

type DashboardStats struct {
	Pipeline         []crm.StageStats
	Opportunities    crm.Summary
	TotalContacts    int
	ContactsByStatus map[string]int
	NPS              nps.Summary
	Mentions         int
	MentionSentiment map[string]int
	StaleContacts    []StaleContact
}

type StaleContact struct {
	Name      string
	DaysSince int
}

// GenerateDashboardStats gathers the numbers shown on the dashboard. userID
// scopes the mention counts; an empty id skips them.
func GenerateDashboardStats(database *sql.DB, userID string, now time.Time) (*DashboardStats, error) {
	contacts, err := db.ListContacts(database)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}
	opps, err := db.ListOpportunities(database, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch opportunities: %w", err)
	}
	responses, err := db.ListNPSResponses(database)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nps responses: %w", err)
	}

	var mentions []models.Mention
	if userID != "" {
		mentions, err = db.ListMentions(database, userID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch mentions: %w", err)
		}
	}

	return ComputeDashboardStats(contacts, opps, responses, mentions, now), nil
}

// ComputeDashboardStats is GenerateDashboardStats over in-memory data.
func ComputeDashboardStats(contacts []models.Contact, opps []models.Opportunity, responses []models.NPSResponse, mentions []models.Mention, now time.Time) *DashboardStats {
	stats := &DashboardStats{
		Pipeline:         crm.PipelineByStage(opps),
		Opportunities:    crm.AggregateOpportunities(opps),
		TotalContacts:    len(contacts),
		ContactsByStatus: make(map[string]int),
		NPS:              nps.Compute(responses),
		Mentions:         len(mentions),
		MentionSentiment: make(map[string]int),
	}

	for _, c := range contacts {
		stats.ContactsByStatus[c.Status]++

		if c.LastContact == nil {
			stats.StaleContacts = append(stats.StaleContacts, StaleContact{Name: c.Name, DaysSince: -1})
			continue
		}
		daysSince := int(now.Sub(*c.LastContact).Hours() / 24)
		if daysSince > StaleAfterDays {
			stats.StaleContacts = append(stats.StaleContacts, StaleContact{Name: c.Name, DaysSince: daysSince})
		}
	}

	for _, m := range mentions {
		stats.MentionSentiment[m.SentimentLabel]++
	}

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  SOCIAL PULSE DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE OVERVIEW\n")
	renderPipeline(&out, stats.Pipeline)
	out.WriteString(fmt.Sprintf("  total %s  weighted %s  avg probability %.0f%%\n\n",
		money(stats.Opportunities.Total), money(stats.Opportunities.Weighted), stats.Opportunities.AvgProbability))

	out.WriteString("CONTACTS\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts  🔥 %d hot  🌤 %d warm  ❄️ %d cold\n\n",
		stats.TotalContacts,
		stats.ContactsByStatus[models.StatusHot],
		stats.ContactsByStatus[models.StatusWarm],
		stats.ContactsByStatus[models.StatusCold]))

	out.WriteString("NPS\n")
	out.WriteString(fmt.Sprintf("  score %d  (standard %+.0f)  %d promoters  %d passives  %d detractors\n\n",
		stats.NPS.Score, stats.NPS.Standard, stats.NPS.Promoters, stats.NPS.Passives, stats.NPS.Detractors))

	if stats.Mentions > 0 {
		out.WriteString("MENTIONS\n")
		out.WriteString(fmt.Sprintf("  %d mentions  👍 %d  😐 %d  👎 %d\n\n",
			stats.Mentions,
			stats.MentionSentiment[models.SentimentPositive],
			stats.MentionSentiment[models.SentimentNeutral],
			stats.MentionSentiment[models.SentimentNegative]))
	}

	if len(stats.StaleContacts) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		out.WriteString(fmt.Sprintf("  ⚠️  %d contacts - no contact in %d+ days\n", len(stats.StaleContacts), StaleAfterDays))
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline []crm.StageStats) {
	if len(pipeline) == 0 {
		out.WriteString("  (no opportunities)\n")
		return
	}

	maxCount := 1
	for _, st := range pipeline {
		if st.Count > maxCount {
			maxCount = st.Count
		}
	}

	for _, st := range pipeline {
		out.WriteString(fmt.Sprintf("  %-13s %s  %2d (%s)\n", st.Stage, bar(st.Count, maxCount, 10), st.Count, money(st.Value)))
	}
}

// bar draws value/max as a fixed-width block bar.
func bar[T int | float64](value, limit T, width int) string {
	n := 0
	if limit > 0 {
		n = int(float64(value) * float64(width) / float64(limit))
	}
	if n > width {
		n = width
	}
	if n < 0 {
		n = 0
	}
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func money(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("$%.0fK", v/1000)
	}
	return fmt.Sprintf("$%.0f", v)
}
