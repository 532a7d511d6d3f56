package models

import (
	"time"

	"github.com/google/uuid"
)

// JobAnalysis is one ranking run: a job description plus the weighted
// criteria selected for it.
type JobAnalysis struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Criteria   []JobAnalysisCriterion `gorm:"foreignKey:JobAnalysisID;constraint:OnDelete:CASCADE" json:"criteria,omitempty"`
	CVAnalyses []CVAnalysis           `gorm:"foreignKey:JobAnalysisID;constraint:OnDelete:CASCADE" json:"cv_analyses,omitempty"`
}

func (JobAnalysis) TableName() string {
	return "job_analyses"
}

// JobAnalysisCriterion binds a catalog criterion to a job analysis with the
// weight used in that run.
type JobAnalysisCriterion struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	JobAnalysisID uuid.UUID `gorm:"type:uuid;not null" json:"job_analysis_id"`
	CriterionID   int       `gorm:"not null" json:"criterion_id"`
	Weight        float64   `gorm:"not null" json:"weight"`

	Criterion Criterion `gorm:"foreignKey:CriterionID" json:"-"`
}

func (JobAnalysisCriterion) TableName() string {
	return "job_analysis_criteria"
}

// CVAnalysis is one candidate's persisted result within a job analysis.
// A degraded run keeps its row; ErrorMessage marks it instead of dropping it.
type CVAnalysis struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobAnalysisID uuid.UUID `gorm:"type:uuid;not null" json:"job_analysis_id"`
	Filename      string    `gorm:"type:text;not null" json:"filename"`
	CandidateName string    `gorm:"type:text;not null" json:"candidate_name"`
	Summary       string    `gorm:"type:text" json:"summary"`
	TotalScore    float64   `gorm:"type:decimal(4,1)" json:"total_score"`
	ErrorMessage  *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Scores []CVScore `gorm:"foreignKey:CVAnalysisID;constraint:OnDelete:CASCADE" json:"scores,omitempty"`
}

func (CVAnalysis) TableName() string {
	return "cv_analyses"
}

// CVScore is one criterion's score for one candidate. Only criteria the
// model actually addressed get a row.
type CVScore struct {
	ID                     int       `gorm:"primaryKey;autoIncrement" json:"id"`
	CVAnalysisID           uuid.UUID `gorm:"type:uuid;not null" json:"cv_analysis_id"`
	JobAnalysisCriterionID int       `gorm:"not null" json:"job_analysis_criterion_id"`
	Score                  float64   `gorm:"not null" json:"score"`
	Explanation            string    `gorm:"type:text" json:"explanation"`

	JobAnalysisCriterion JobAnalysisCriterion `gorm:"foreignKey:JobAnalysisCriterionID" json:"-"`
}

func (CVScore) TableName() string {
	return "cv_scores"
}
