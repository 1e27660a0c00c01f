// ABOUTME: Social monitoring MCP tool handlers
// ABOUTME: Implements analyze_sentiment, fetch_mentions and discover_influencers
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/socialpulse/models"
	"github.com/harperreed/socialpulse/sentiment"
	"github.com/harperreed/socialpulse/sync"
)

type MonitoringHandlers struct {
	identity    models.Identity
	mentions    *sync.MonitoringImporter
	influencers *sync.InfluencerImporter
}

func NewMonitoringHandlers(database *sql.DB, identity models.Identity, logger *zap.Logger) *MonitoringHandlers {
	return &MonitoringHandlers{
		identity:    identity,
		mentions:    sync.NewMonitoringImporter(database, logger),
		influencers: sync.NewInfluencerImporter(database, logger),
	}
}

type AnalyzeSentimentInput struct {
	Text string `json:"text" jsonschema:"Text to score"`
}

func (h *MonitoringHandlers) AnalyzeSentiment(_ context.Context, _ *mcp.CallToolRequest, input AnalyzeSentimentInput) (*mcp.CallToolResult, sentiment.Result, error) {
	return nil, sentiment.Analyze(input.Text), nil
}

type FetchMentionsInput struct {
	Keywords []string `json:"keywords,omitempty" jsonschema:"Brand keywords to track; the first one is used (default: your brand)"`
}

type FetchMentionsOutput struct {
	Mentions []models.Mention `json:"mentions"`
}

func (h *MonitoringHandlers) FetchMentions(ctx context.Context, _ *mcp.CallToolRequest, input FetchMentionsInput) (*mcp.CallToolResult, FetchMentionsOutput, error) {
	mentions, err := h.mentions.FetchMentions(ctx, h.identity, input.Keywords)
	if err != nil {
		return nil, FetchMentionsOutput{}, fmt.Errorf("failed to fetch mentions: %w", err)
	}
	return nil, FetchMentionsOutput{Mentions: mentions}, nil
}

type DiscoverInfluencersInput struct {
	Category string `json:"category,omitempty" jsonschema:"Niche to search (default tech)"`
	Platform string `json:"platform,omitempty" jsonschema:"Platform to search (default instagram)"`
}

type DiscoverInfluencersOutput struct {
	Influencers []models.Influencer `json:"influencers"`
}

func (h *MonitoringHandlers) DiscoverInfluencers(ctx context.Context, _ *mcp.CallToolRequest, input DiscoverInfluencersInput) (*mcp.CallToolResult, DiscoverInfluencersOutput, error) {
	infs, err := h.influencers.Discover(ctx, h.identity, input.Category, input.Platform)
	if err != nil {
		return nil, DiscoverInfluencersOutput{}, fmt.Errorf("failed to discover influencers: %w", err)
	}
	return nil, DiscoverInfluencersOutput{Influencers: infs}, nil
}
