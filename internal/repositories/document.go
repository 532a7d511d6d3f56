package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/models"
)

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByJobAnalysisID(jobAnalysisID uuid.UUID) ([]models.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document record: %w", err)
	}
	return nil
}

// FindByJobAnalysisID implements DocumentRepository.
func (d *documentRepository) FindByJobAnalysisID(jobAnalysisID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	if err := d.db.Where("job_analysis_id = ?", jobAnalysisID).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	return docs, nil
}
