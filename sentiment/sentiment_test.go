// ABOUTME: Tests for the lexicon sentiment analyzer
package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harperreed/socialpulse/models"
)

func TestAnalyzeEmpty(t *testing.T) {
	for _, text := range []string{"", "   "} {
		r := Analyze(text)
		assert.Equal(t, models.SentimentNeutral, r.Label)
		assert.Zero(t, r.Score)
		assert.Zero(t, r.Confidence)
	}
}

func TestAnalyzeLabels(t *testing.T) {
	cases := []struct {
		text  string
		label string
	}{
		{"I love this product", models.SentimentPositive},
		{"Awesome support and great docs", models.SentimentPositive},
		{"worst update ever", models.SentimentNegative},
		{"the app is poor and the support is terrible", models.SentimentNegative},
		{"shipping took four days", models.SentimentNeutral},
		{"great but awful", models.SentimentNeutral},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.label, Analyze(tc.text).Label, tc.text)
	}
}

func TestAnalyzeClampsAndConfidence(t *testing.T) {
	r := Analyze("love")
	assert.Equal(t, 1.0, r.Score)
	assert.Equal(t, 1.0, r.Confidence)

	r = Analyze("hate hate")
	assert.Equal(t, -1.0, r.Score)
	assert.Equal(t, 1.0, r.Confidence)
}

func TestAnalyzeDilutedPositive(t *testing.T) {
	// one hit in 60 words normalizes to 1/6, under the threshold
	text := "great " + strings.Repeat("word ", 59)
	r := Analyze(text)
	assert.InDelta(t, 1.0/6.0, r.Score, 1e-9)
	assert.Equal(t, models.SentimentNeutral, r.Label)
}

func TestAnalyzePunctuationBlocksMatch(t *testing.T) {
	assert.Equal(t, models.SentimentNeutral, Analyze("great!").Label)
}

func TestLabelBoundaries(t *testing.T) {
	assert.Equal(t, models.SentimentNeutral, Label(0.2))
	assert.Equal(t, models.SentimentPositive, Label(0.21))
	assert.Equal(t, models.SentimentNeutral, Label(-0.2))
	assert.Equal(t, models.SentimentNegative, Label(-0.21))
}
