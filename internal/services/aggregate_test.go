package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateScoreWeightedMean(t *testing.T) {
	criteria := []CriterionWeight{
		{Name: "Grammar", Weight: 1.0},
		{Name: "Experience", Weight: 2.0},
	}
	scores := map[string]CriterionScore{
		"Grammar":    {Score: 8.0},
		"Experience": {Score: 6.0},
	}

	// (8.0*1.0 + 6.0*2.0) / 3.0 = 6.666... -> 6.7
	assert.Equal(t, 6.7, AggregateScore(scores, criteria))
}

func TestAggregateScoreSkipsAbsentCriteria(t *testing.T) {
	criteria := []CriterionWeight{
		{Name: "Grammar", Weight: 1.0},
		{Name: "Experience", Weight: 2.0},
	}
	scores := map[string]CriterionScore{
		"Grammar":    {Score: 8.0},
		"Experience": {Score: 6.0},
	}
	base := AggregateScore(scores, criteria)

	// Adding a requested-but-unscored criterion must not move the
	// composite: absence is "not assessed", not zero.
	withAbsent := append(criteria, CriterionWeight{Name: "Leadership", Weight: 5.0})
	assert.Equal(t, base, AggregateScore(scores, withAbsent))
}

func TestAggregateScoreEmptyMap(t *testing.T) {
	criteria := []CriterionWeight{
		{Name: "Grammar", Weight: 1.0},
	}
	assert.Equal(t, 0.0, AggregateScore(map[string]CriterionScore{}, criteria))
	assert.Equal(t, 0.0, AggregateScore(nil, criteria))
	assert.Equal(t, 0.0, AggregateScore(nil, nil))
}

func TestAggregateScoreRounding(t *testing.T) {
	tests := []struct {
		name     string
		scores   map[string]CriterionScore
		criteria []CriterionWeight
		want     float64
	}{
		{
			name:     "rounds half up",
			scores:   map[string]CriterionScore{"A": {Score: 7.25}},
			criteria: []CriterionWeight{{Name: "A", Weight: 1.0}},
			want:     7.3,
		},
		{
			name:     "rounds down",
			scores:   map[string]CriterionScore{"A": {Score: 7.24}},
			criteria: []CriterionWeight{{Name: "A", Weight: 1.0}},
			want:     7.2,
		},
		{
			name:     "single criterion passes through",
			scores:   map[string]CriterionScore{"A": {Score: 5.5}},
			criteria: []CriterionWeight{{Name: "A", Weight: 3.0}},
			want:     5.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateScore(tt.scores, tt.criteria))
		})
	}
}

func TestAggregateScoreClampedToTen(t *testing.T) {
	// Out-of-range model output must not push the composite above 10.
	scores := map[string]CriterionScore{"A": {Score: 12.0}}
	criteria := []CriterionWeight{{Name: "A", Weight: 1.0}}
	assert.Equal(t, 10.0, AggregateScore(scores, criteria))
}

func TestAggregateScoreIgnoresUnrequestedScores(t *testing.T) {
	// Scores for criteria that were never requested do not participate.
	scores := map[string]CriterionScore{
		"Grammar": {Score: 2.0},
		"Bonus":   {Score: 10.0},
	}
	criteria := []CriterionWeight{{Name: "Grammar", Weight: 1.0}}
	assert.Equal(t, 2.0, AggregateScore(scores, criteria))
}
