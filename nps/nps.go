// ABOUTME: Net Promoter Score classification and summary
// ABOUTME: Score is the mean rating scaled by ten; the textbook NPS is reported alongside
package nps

import (
	"errors"
	"fmt"
	"math"

	"github.com/harperreed/socialpulse/models"
)

// ErrScoreOutOfRange is returned for ratings outside 0..10.
var ErrScoreOutOfRange = errors.New("nps score must be between 0 and 10")

type Class string

const (
	Promoter  Class = "promoter"
	Passive   Class = "passive"
	Detractor Class = "detractor"
)

// Classify buckets a 0-10 rating. Out-of-range values land in the nearest
// bucket so the function is total over int.
func Classify(score int) Class {
	switch {
	case score >= 9:
		return Promoter
	case score >= 7:
		return Passive
	default:
		return Detractor
	}
}

// Summary is the aggregate over a set of responses.
//
// Score is round(mean rating * 10), which is what the dashboard has always
// shown. Standard is percent promoters minus percent detractors.
type Summary struct {
	Score      int     `json:"score"`
	Standard   float64 `json:"standard"`
	Average    float64 `json:"average"`
	Promoters  int     `json:"promoters"`
	Passives   int     `json:"passives"`
	Detractors int     `json:"detractors"`
	Total      int     `json:"total"`
}

// Compute summarizes responses. No responses yields a zero Summary.
func Compute(responses []models.NPSResponse) Summary {
	var s Summary
	s.Total = len(responses)
	if s.Total == 0 {
		return s
	}

	sum := 0
	for _, r := range responses {
		sum += r.Score
		switch Classify(r.Score) {
		case Promoter:
			s.Promoters++
		case Passive:
			s.Passives++
		case Detractor:
			s.Detractors++
		}
	}

	n := float64(s.Total)
	s.Average = float64(sum) / n
	s.Score = int(math.Round(s.Average * 10))
	s.Standard = (float64(s.Promoters) - float64(s.Detractors)) / n * 100

	return s
}

// ValidateScore checks a rating before it is stored.
func ValidateScore(score int) error {
	if score < 0 || score > 10 {
		return fmt.Errorf("%w: got %d", ErrScoreOutOfRange, score)
	}
	return nil
}
