package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/models"
)

type AnalysisRepository interface {
	CreateJobAnalysis(analysis *models.JobAnalysis) error
	SaveCVAnalysis(analysis *models.CVAnalysis) error
	FindJobAnalysisByID(id uuid.UUID) (*models.JobAnalysis, error)
	FindRankedResults(jobAnalysisID uuid.UUID) ([]models.CVAnalysis, error)
	ListJobAnalyses(limit int) ([]models.JobAnalysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// CreateJobAnalysis implements AnalysisRepository. The job run and its
// weighted criteria rows go in one transaction via gorm associations.
func (r *analysisRepository) CreateJobAnalysis(analysis *models.JobAnalysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create job analysis: %w", err)
	}
	return nil
}

// SaveCVAnalysis implements AnalysisRepository. Persists the candidate row
// and whatever score rows the model actually produced.
func (r *analysisRepository) SaveCVAnalysis(analysis *models.CVAnalysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to save cv analysis: %w", err)
	}
	return nil
}

// FindJobAnalysisByID implements AnalysisRepository.
func (r *analysisRepository) FindJobAnalysisByID(id uuid.UUID) (*models.JobAnalysis, error) {
	var analysis models.JobAnalysis
	err := r.db.
		Preload("Criteria").
		Preload("Criteria.Criterion").
		Where("id = ?", id).
		First(&analysis).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job analysis not found")
		}
		return nil, fmt.Errorf("failed to find job analysis: %w", err)
	}
	return &analysis, nil
}

// FindRankedResults implements AnalysisRepository. Descending by total
// score, creation order breaking ties, matching the in-memory ranking.
func (r *analysisRepository) FindRankedResults(jobAnalysisID uuid.UUID) ([]models.CVAnalysis, error) {
	var analyses []models.CVAnalysis
	err := r.db.
		Preload("Scores").
		Preload("Scores.JobAnalysisCriterion").
		Preload("Scores.JobAnalysisCriterion.Criterion").
		Where("job_analysis_id = ?", jobAnalysisID).
		Order("total_score DESC, created_at ASC").
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ranked results: %w", err)
	}
	return analyses, nil
}

// ListJobAnalyses implements AnalysisRepository.
func (r *analysisRepository) ListJobAnalyses(limit int) ([]models.JobAnalysis, error) {
	var analyses []models.JobAnalysis
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list job analyses: %w", err)
	}
	return analyses, nil
}
