package services

import "math"

// CriterionWeight is one evaluation axis as requested for a job analysis:
// the catalog criterion plus the weight chosen for this run.
type CriterionWeight struct {
	ID          int
	Name        string
	Description string
	Weight      float64
}

// CriterionScore is the model's verdict on one criterion.
type CriterionScore struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// AggregateScore computes the weighted composite in [0, 10] from a possibly
// partial score map. Only criteria the model actually scored participate:
// an absent criterion contributes neither to the numerator nor the
// denominator, so it neither penalizes the candidate nor dilutes the rest.
// Returns 0.0 when no requested criterion was scored.
func AggregateScore(scores map[string]CriterionScore, criteria []CriterionWeight) float64 {
	var weightedSum, weightTotal float64
	for _, criterion := range criteria {
		score, ok := scores[criterion.Name]
		if !ok {
			continue
		}
		weightedSum += score.Score * criterion.Weight
		weightTotal += criterion.Weight
	}

	if weightTotal == 0 {
		return 0.0
	}

	composite := weightedSum / weightTotal
	composite = math.Round(composite*10) / 10
	return math.Min(composite, 10.0)
}
