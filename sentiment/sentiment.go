// ABOUTME: Lexicon-based sentiment scoring for mention text
// ABOUTME: Counts positive and negative words and normalizes to [-1, 1]
package sentiment

import (
	"math"
	"strings"

	"github.com/harperreed/socialpulse/models"
)

var positiveWords = map[string]bool{
	"great": true, "amazing": true, "excellent": true, "love": true,
	"wonderful": true, "fantastic": true, "perfect": true, "awesome": true,
}

var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "awful": true, "hate": true,
	"horrible": true, "worst": true, "disappointing": true, "poor": true,
}

// Threshold is the normalized score a text must exceed to get a non-neutral label.
const Threshold = 0.2

type Result struct {
	Score      float64 `json:"score"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Analyze scores text. Words are whitespace-separated and matched whole, so
// trailing punctuation keeps a word from counting.
func Analyze(text string) Result {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return Result{Label: models.SentimentNeutral}
	}

	score := 0
	for _, w := range words {
		if positiveWords[w] {
			score++
		}
		if negativeWords[w] {
			score--
		}
	}

	normalized := float64(score) / float64(len(words)) * 10
	normalized = math.Max(-1, math.Min(1, normalized))

	return Result{
		Score:      normalized,
		Label:      Label(normalized),
		Confidence: math.Abs(normalized),
	}
}

// Label maps a normalized score to positive, negative or neutral.
func Label(score float64) string {
	switch {
	case score > Threshold:
		return models.SentimentPositive
	case score < -Threshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
