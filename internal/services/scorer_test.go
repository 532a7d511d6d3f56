package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validVerdict = `{
	"candidate": "JOHN mcDONALD",
	"scores": {
		"Grammar": {"score": 8.0, "explanation": "Clean, professional writing."},
		"Experience": {"score": 6.0, "explanation": "Relevant but junior roles."}
	},
	"summary": "Strong writer.\n\nLimited experience."
}`

func testCriteria() []CriterionWeight {
	return []CriterionWeight{
		{Name: "Grammar", Description: "Writing quality", Weight: 1.0},
		{Name: "Experience", Description: "Work history", Weight: 2.0},
	}
}

func testTranscript() *DocumentTranscript {
	return &DocumentTranscript{Text: "# John McDonald\nSoftware engineer.", PageCount: 1}
}

func TestScoreCVParsesVerdict(t *testing.T) {
	llm := &fakeLLM{
		completeText: func(_ context.Context, _ []Message) (string, error) {
			return validVerdict, nil
		},
	}
	scorer := NewScorerService(llm, nil)

	result := scorer.ScoreCV(context.Background(), testTranscript(), testCriteria(), "Backend engineer", "cv1.pdf")

	require.NotNil(t, result)
	assert.False(t, result.Degraded())
	assert.Equal(t, "John Mcdonald", result.CandidateName)
	assert.Equal(t, "cv1.pdf", result.Filename)
	assert.Len(t, result.Scores, 2)
	assert.Equal(t, 8.0, result.Scores["Grammar"].Score)
	assert.Equal(t, 6.7, result.TotalScore)
	assert.Contains(t, result.Summary, "Strong writer.")
}

func TestScoreCVStripsCodeFences(t *testing.T) {
	responses := []string{
		validVerdict,
		"```json\n" + validVerdict + "\n```",
		"```\n```json\n" + validVerdict + "\n```\n```",
		"Here is the evaluation:\n```json\n" + validVerdict + "\n```\nDone.",
	}

	var results []*CVAnalysisResult
	for _, response := range responses {
		llm := &fakeLLM{
			completeText: func(_ context.Context, _ []Message) (string, error) {
				return response, nil
			},
		}
		scorer := NewScorerService(llm, nil)
		results = append(results, scorer.ScoreCV(context.Background(), testTranscript(), testCriteria(), "job", "cv.pdf"))
	}

	// Zero, one and nested fences all parse to the same structured result.
	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0].CandidateName, results[i].CandidateName)
		assert.Equal(t, results[0].Scores, results[i].Scores)
		assert.Equal(t, results[0].TotalScore, results[i].TotalScore)
	}
}

func TestRepairJSONIdempotent(t *testing.T) {
	once := RepairJSON("```json\n" + validVerdict + "\n```")
	twice := RepairJSON(once)
	assert.Equal(t, once, twice)
}

func TestScoreCVDegradesOnUnparseableResponse(t *testing.T) {
	llm := &fakeLLM{
		completeText: func(_ context.Context, _ []Message) (string, error) {
			return "I cannot produce JSON today, sorry.", nil
		},
	}
	scorer := NewScorerService(llm, nil)

	result := scorer.ScoreCV(context.Background(), testTranscript(), testCriteria(), "job", "cv.pdf")

	require.NotNil(t, result)
	assert.True(t, result.Degraded())
	assert.Equal(t, "Unknown", result.CandidateName)
	assert.Empty(t, result.Scores)
	assert.Empty(t, result.Summary)
	assert.Equal(t, 0.0, result.TotalScore)
}

func TestScoreCVDegradesOnModelFailure(t *testing.T) {
	llm := &fakeLLM{
		completeText: func(_ context.Context, _ []Message) (string, error) {
			return "", &ModelInvocationError{Provider: "google", Op: "complete_text", Err: fmt.Errorf("quota exceeded")}
		},
	}
	scorer := NewScorerService(llm, nil)

	result := scorer.ScoreCV(context.Background(), testTranscript(), testCriteria(), "job", "cv.pdf")

	assert.True(t, result.Degraded())
	assert.Contains(t, result.Error, "quota exceeded")
}

func TestScoreCVLeavesSkippedCriteriaAbsent(t *testing.T) {
	llm := &fakeLLM{
		completeText: func(_ context.Context, _ []Message) (string, error) {
			return `{"candidate": "Jane Doe", "scores": {"Grammar": {"score": 9.0, "explanation": "ok"}}, "summary": "s"}`, nil
		},
	}
	scorer := NewScorerService(llm, nil)

	result := scorer.ScoreCV(context.Background(), testTranscript(), testCriteria(), "job", "cv.pdf")

	assert.False(t, result.Degraded())
	_, hasExperience := result.Scores["Experience"]
	assert.False(t, hasExperience, "unaddressed criterion must stay absent, not zero")
	assert.Equal(t, 9.0, result.TotalScore)
}

func TestScoreCVEmptyTranscriptShortCircuits(t *testing.T) {
	llm := &fakeLLM{}
	scorer := NewScorerService(llm, nil)

	result := scorer.ScoreCV(context.Background(), &DocumentTranscript{PageCount: 2}, testCriteria(), "job", "cv.pdf")

	assert.True(t, result.Degraded())
	assert.Contains(t, result.Error, "insufficient evidence")
	assert.Zero(t, llm.textCalls.Load(), "no model call for an empty transcript")
}

func TestNormalizeCandidateName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JOHN mcDONALD", "John Mcdonald"},
		{"JOHN DOE", "John Doe"},
		{"jane doe", "Jane Doe"},
		{"N/A", "N/A"},
		{"", ""},
		{"  Ada Lovelace  ", "Ada Lovelace"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCandidateName(tt.in))
		})
	}
}
