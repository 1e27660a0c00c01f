// ABOUTME: Static copilot suggestion cards
// ABOUTME: Alert, insight, action and tip cards shown next to the chat
package copilot

// Suggestion kinds.
const (
	SuggestionTip     = "tip"
	SuggestionAction  = "action"
	SuggestionAlert   = "alert"
	SuggestionInsight = "insight"
)

type Suggestion struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
	Urgent      bool   `json:"urgent,omitempty"`
}

// Suggestions returns the canned suggestion cards.
func Suggestions() []Suggestion {
	return []Suggestion{
		{
			ID:          1,
			Type:        SuggestionAlert,
			Title:       "Crisis Detection",
			Description: "Negative sentiment spike detected on Twitter. Would you like me to draft a response?",
			Confidence:  94,
			Urgent:      true,
		},
		{
			ID:          2,
			Type:        SuggestionInsight,
			Title:       "Trend Opportunity",
			Description: "Your brand is trending positively on Instagram. Consider amplifying this content.",
			Confidence:  87,
		},
		{
			ID:          3,
			Type:        SuggestionAction,
			Title:       "Influencer Outreach",
			Description: "3 new high-value influencers are discussing your industry. Should I add them to your watchlist?",
			Confidence:  76,
		},
		{
			ID:          4,
			Type:        SuggestionTip,
			Title:       "Optimal Posting Time",
			Description: "Posting in 2 hours will maximize engagement by 23%.",
			Confidence:  82,
		},
	}
}
