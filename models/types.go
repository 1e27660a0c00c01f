// ABOUTME: Data models for social pulse entities
// ABOUTME: Defines contacts, opportunities, widgets, NPS responses, chat messages, mentions and influencers
package models

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Company     string     `json:"company,omitempty"`
	Role        string     `json:"role,omitempty"`
	Status      string     `json:"status"`
	LastContact *time.Time `json:"last_contact,omitempty"`
	Source      string     `json:"source,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Opportunity struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	Value       float64    `json:"value"`
	Stage       string     `json:"stage"`
	Probability int        `json:"probability"`
	CloseDate   *time.Time `json:"close_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type NPSResponse struct {
	ID       uuid.UUID `json:"id"`
	Score    int       `json:"score"`
	Feedback string    `json:"feedback,omitempty"`
	Date     time.Time `json:"date"`
	Source   string    `json:"source,omitempty"`
}

// DataPoint is one entry of a widget series. Which fields are meaningful
// depends on the widget type: metric uses Value and Change, pie adds Color,
// sentiment bars use Positive/Negative/Neutral.
type DataPoint struct {
	Name     string  `json:"name,omitempty"`
	Value    float64 `json:"value"`
	Change   float64 `json:"change,omitempty"`
	Color    string  `json:"color,omitempty"`
	Positive float64 `json:"positive,omitempty"`
	Negative float64 `json:"negative,omitempty"`
	Neutral  float64 `json:"neutral,omitempty"`
}

type Widget struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Title  string         `json:"title"`
	Size   string         `json:"size"`
	Data   []DataPoint    `json:"data"`
	Config map[string]any `json:"config"`
}

type Dashboard struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Widgets []Widget `json:"widgets"`
}

type ChatMessage struct {
	ID        int       `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Mention struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"user_id"`
	Platform        string    `json:"platform"`
	Content         string    `json:"content"`
	Author          string    `json:"author"`
	AuthorURL       string    `json:"author_url,omitempty"`
	PostURL         string    `json:"post_url,omitempty"`
	Sentiment       float64   `json:"sentiment"`
	SentimentLabel  string    `json:"sentiment_label"`
	EngagementCount int       `json:"engagement_count"`
	Reach           int       `json:"reach"`
	MentionDate     time.Time `json:"mention_date"`
	CreatedAt       time.Time `json:"created_at"`
}

type Influencer struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Platform       string    `json:"platform"`
	Handle         string    `json:"handle"`
	FollowerCount  int       `json:"follower_count"`
	EngagementRate float64   `json:"engagement_rate"`
	Category       string    `json:"category"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	IsTracked      bool      `json:"is_tracked"`
	CreatedAt      time.Time `json:"created_at"`
}

// Identity is the resolved auth gate. An empty UserID means nobody is signed in.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// Authenticated reports whether an identity has been resolved.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// Contact status constants.
const (
	StatusHot  = "hot"
	StatusWarm = "warm"
	StatusCold = "cold"

	// StatusAll is the filter value that matches every status.
	StatusAll = "all"
)

const (
	StageProspecting   = "prospecting"
	StageQualification = "qualification"
	StageProposal      = "proposal"
	StageNegotiation   = "negotiation"
	StageClosedWon     = "closed-won"
	StageClosedLost    = "closed-lost"
)

// Stages lists opportunity stages in pipeline order.
var Stages = []string{
	StageProspecting,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// Widget type constants.
const (
	WidgetMetric = "metric"
	WidgetBar    = "bar"
	WidgetPie    = "pie"
	WidgetLine   = "line"
)

// Widget size constants.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Chat role constants.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Sentiment constants.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// IsValidStatus reports whether s is a contact status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusHot, StatusWarm, StatusCold:
		return true
	}
	return false
}

// IsValidStage reports whether s is an opportunity stage.
func IsValidStage(s string) bool {
	for _, stage := range Stages {
		if stage == s {
			return true
		}
	}
	return false
}

// IsValidWidgetType reports whether t is one of the four widget types.
func IsValidWidgetType(t string) bool {
	switch t {
	case WidgetMetric, WidgetBar, WidgetPie, WidgetLine:
		return true
	}
	return false
}

// IsValidWidgetSize reports whether s is one of the three widget sizes.
func IsValidWidgetSize(s string) bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}
