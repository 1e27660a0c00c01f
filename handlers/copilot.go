// ABOUTME: Copilot MCP tool handlers
// ABOUTME: Implements ask_copilot and copilot_suggestions over the intent matcher
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/socialpulse/copilot"
)

type CopilotHandlers struct {
	matcher *copilot.Matcher
}

func NewCopilotHandlers(matcher *copilot.Matcher) *CopilotHandlers {
	if matcher == nil {
		matcher = copilot.NewMatcher(nil, "")
	}
	return &CopilotHandlers{matcher: matcher}
}

type AskCopilotInput struct {
	Message string `json:"message" jsonschema:"What to ask the dashboard copilot (required)"`
}

type AskCopilotOutput struct {
	Reply  string `json:"reply"`
	// Intent is the matched rule name, empty when the fallback answered.
	Intent string `json:"intent,omitempty"`
}

// AskCopilot answers immediately; the typing delay only exists in the chat surfaces.
func (h *CopilotHandlers) AskCopilot(_ context.Context, _ *mcp.CallToolRequest, input AskCopilotInput) (*mcp.CallToolResult, AskCopilotOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, AskCopilotOutput{}, fmt.Errorf("message is required")
	}

	if rule, ok := h.matcher.MatchRule(input.Message); ok {
		return nil, AskCopilotOutput{Reply: rule.Response, Intent: rule.Name}, nil
	}
	return nil, AskCopilotOutput{Reply: h.matcher.Match(input.Message)}, nil
}

type SuggestionsInput struct{}

type SuggestionsOutput struct {
	Suggestions []copilot.Suggestion `json:"suggestions"`
}

func (h *CopilotHandlers) Suggestions(_ context.Context, _ *mcp.CallToolRequest, _ SuggestionsInput) (*mcp.CallToolResult, SuggestionsOutput, error) {
	return nil, SuggestionsOutput{Suggestions: copilot.Suggestions()}, nil
}
