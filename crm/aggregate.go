// ABOUTME: Opportunity pipeline aggregation
// ABOUTME: Totals, average probability, weighted value and per-stage breakdown
package crm

import (
	"github.com/harperreed/socialpulse/models"
)

type Summary struct {
	Count          int     `json:"count"`
	Total          float64 `json:"total"`
	AvgProbability float64 `json:"avg_probability"`
	Weighted       float64 `json:"weighted"`
}

type StageStats struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// AggregateOpportunities sums values and averages probabilities.
// An empty slice yields a zero Summary rather than a NaN average.
func AggregateOpportunities(opps []models.Opportunity) Summary {
	s := Summary{Count: len(opps)}
	if len(opps) == 0 {
		return s
	}

	probSum := 0
	for _, o := range opps {
		s.Total += o.Value
		probSum += o.Probability
		s.Weighted += o.Value * float64(o.Probability) / 100
	}
	s.AvgProbability = float64(probSum) / float64(len(opps))

	return s
}

// PipelineByStage groups opportunities by stage in pipeline order. Stages
// with no opportunities are omitted; unknown stages are appended at the end.
func PipelineByStage(opps []models.Opportunity) []StageStats {
	byStage := make(map[string]*StageStats)
	var extra []string

	for _, o := range opps {
		stage := o.Stage
		if stage == "" {
			stage = "unknown"
		}
		st, ok := byStage[stage]
		if !ok {
			st = &StageStats{Stage: stage}
			byStage[stage] = st
			if !models.IsValidStage(stage) {
				extra = append(extra, stage)
			}
		}
		st.Count++
		st.Value += o.Value
	}

	var out []StageStats
	for _, stage := range models.Stages {
		if st, ok := byStage[stage]; ok {
			out = append(out, *st)
		}
	}
	for _, stage := range extra {
		out = append(out, *byStage[stage])
	}
	return out
}

// WeightedPipeline is the probability-weighted value of the pipeline.
func WeightedPipeline(opps []models.Opportunity) float64 {
	return AggregateOpportunities(opps).Weighted
}
