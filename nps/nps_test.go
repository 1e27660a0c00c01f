// ABOUTME: Tests for NPS classification and aggregation
// ABOUTME: Bucket boundaries, empty input and the mean-times-ten score
package nps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harperreed/socialpulse/models"
)

func responses(scores ...int) []models.NPSResponse {
	out := make([]models.NPSResponse, len(scores))
	for i, s := range scores {
		out[i] = models.NPSResponse{Score: s}
	}
	return out
}

func TestClassify(t *testing.T) {
	want := map[int]Class{
		0: Detractor, 3: Detractor, 6: Detractor,
		7: Passive, 8: Passive,
		9: Promoter, 10: Promoter,
	}
	for score, class := range want {
		assert.Equal(t, class, Classify(score), "score %d", score)
	}
}

func TestClassifyTotal(t *testing.T) {
	for score := 0; score <= 10; score++ {
		c := Classify(score)
		if c != Promoter && c != Passive && c != Detractor {
			t.Errorf("score %d has no class", score)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Compute(nil))
}

func TestComputeSample(t *testing.T) {
	s := Compute(SampleResponses())

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Promoters)
	assert.Equal(t, 1, s.Passives)
	assert.Equal(t, 1, s.Detractors)
	assert.Equal(t, 8.25, s.Average)
	assert.Equal(t, 83, s.Score)
	assert.Equal(t, 25.0, s.Standard)
}

func TestComputeAllDetractors(t *testing.T) {
	s := Compute(responses(0, 2, 4))
	assert.Equal(t, 20, s.Score)
	assert.Equal(t, -100.0, s.Standard)
}

func TestComputeCountsAddUp(t *testing.T) {
	s := Compute(responses(1, 5, 7, 8, 9, 10, 10))
	assert.Equal(t, s.Total, s.Promoters+s.Passives+s.Detractors)
}

func TestValidateScore(t *testing.T) {
	assert.NoError(t, ValidateScore(0))
	assert.NoError(t, ValidateScore(10))

	err := ValidateScore(11)
	assert.True(t, errors.Is(err, ErrScoreOutOfRange))
	assert.Error(t, ValidateScore(-1))
}
