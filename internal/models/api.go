package models

import "time"

type CriterionCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AnalyzeCriterion is one weighted criterion reference inside the
// analyze-cvs multipart form's "criteria" JSON field.
type AnalyzeCriterion struct {
	ID     int     `json:"id"`
	Weight float64 `json:"weight"`
}

type CandidateScore struct {
	Criterion   string  `json:"criterion"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation,omitempty"`
}

// CandidateResult is one ranked entry in an analyze-cvs response. A degraded
// entry keeps its slot and carries Error instead of scores.
type CandidateResult struct {
	Index         int              `json:"index"`
	CandidateName string           `json:"candidate_name"`
	Filename      string           `json:"filename"`
	TotalScore    float64          `json:"total_score"`
	Summary       string           `json:"summary,omitempty"`
	Scores        []CandidateScore `json:"scores"`
	Error         string           `json:"error,omitempty"`
}

type AnalyzeResponse struct {
	JobAnalysisID string            `json:"job_analysis_id"`
	Results       []CandidateResult `json:"results"`
}

type JobAnalysisSummary struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportRequest is the generate-pdf payload: the ranked batch shape the
// frontend already holds.
type ReportRequest struct {
	Candidates []CandidateResult `json:"candidates"`
}
