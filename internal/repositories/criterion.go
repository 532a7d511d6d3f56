package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/models"
)

type CriterionRepository interface {
	Create(criterion *models.Criterion) error
	FindAll() ([]models.Criterion, error)
	FindByIDs(ids []int) ([]models.Criterion, error)
	Delete(id int) error
}

type criterionRepository struct {
	db *gorm.DB
}

func NewCriterionRepository(db *gorm.DB) CriterionRepository {
	return &criterionRepository{db: db}
}

// Create implements CriterionRepository. Name uniqueness is enforced by the
// schema; a duplicate surfaces as a constraint error.
func (r *criterionRepository) Create(criterion *models.Criterion) error {
	if err := r.db.Create(criterion).Error; err != nil {
		return fmt.Errorf("failed to create criterion: %w", err)
	}
	return nil
}

// FindAll implements CriterionRepository.
func (r *criterionRepository) FindAll() ([]models.Criterion, error) {
	var criteria []models.Criterion
	if err := r.db.Order("id ASC").Find(&criteria).Error; err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	return criteria, nil
}

// FindByIDs implements CriterionRepository.
func (r *criterionRepository) FindByIDs(ids []int) ([]models.Criterion, error) {
	var criteria []models.Criterion
	if err := r.db.Where("id IN ?", ids).Find(&criteria).Error; err != nil {
		return nil, fmt.Errorf("failed to find criteria: %w", err)
	}
	return criteria, nil
}

// Delete implements CriterionRepository.
func (r *criterionRepository) Delete(id int) error {
	result := r.db.Delete(&models.Criterion{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete criterion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("criterion not found")
	}
	return nil
}
