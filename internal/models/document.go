package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is the archive record for one uploaded CV file. The raw PDF is
// kept on disk so a past analysis can be re-examined.
type Document struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobAnalysisID    uuid.UUID `gorm:"type:uuid;not null" json:"job_analysis_id"`
	Filename         string    `gorm:"type:text" json:"filename"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Document) TableName() string {
	return "documents"
}
