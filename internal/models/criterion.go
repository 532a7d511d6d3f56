package models

// Criterion is one named evaluation axis from the catalog. The description
// steers the model's judgment when the criterion is scored.
type Criterion struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:text;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (Criterion) TableName() string {
	return "criteria"
}
