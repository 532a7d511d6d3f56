package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connected")

	if err := db.AutoMigrate(
		&models.Criterion{},
		&models.JobAnalysis{},
		&models.JobAnalysisCriterion{},
		&models.CVAnalysis{},
		&models.CVScore{},
		&models.Document{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDefaultCriteria inserts the stock criteria catalog on first start so a
// fresh deployment is usable without a management step.
func SeedDefaultCriteria(db *gorm.DB) error {
	defaults := []models.Criterion{
		{
			Name:        "Grammar",
			Description: "Assess the CV for correct grammar, punctuation, and spelling. Penalize for frequent errors, awkward phrasing, or lack of clarity. Reward concise and professionally structured language.",
		},
		{
			Name:        "Experience",
			Description: "Evaluate the candidate's work history in terms of relevance to the job description, duration of roles, progression, and specific responsibilities or achievements. Prioritize recent and high-impact experience.",
		},
		{
			Name:        "Education",
			Description: "Analyze the candidate's academic qualifications, including degrees, certifications, and institution prestige. Consider relevance to the job field and any continued learning or specialization.",
		},
		{
			Name:        "Skills",
			Description: "Examine the listed hard and soft skills. Determine how well they match the required skills in the job description. Highlight technical proficiencies, tools, frameworks, or domain-specific abilities.",
		},
		{
			Name:        "Leadership",
			Description: "Identify examples of leading teams, projects, or initiatives. Consider formal leadership roles (e.g., manager, team lead) and informal leadership (mentorship, initiative-taking). Emphasize scope and impact.",
		},
		{
			Name:        "Teamwork",
			Description: "Look for instances of collaboration in teams, cross-functional work, or contributions to group success. Note any roles that required interpersonal coordination, conflict resolution, or support of others.",
		},
		{
			Name:        "Relevance",
			Description: "Measure how well the candidate's overall profile — including experience, education, and skills — aligns with the job description. Emphasize alignment with specific responsibilities, industry domain, and required qualifications. Penalize unrelated or off-topic content.",
		},
	}

	for _, criterion := range defaults {
		var existing models.Criterion
		err := db.Where("name = ?", criterion.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check criterion %q: %w", criterion.Name, err)
		}
		if err := db.Create(&criterion).Error; err != nil {
			return fmt.Errorf("failed to seed criterion %q: %w", criterion.Name, err)
		}
	}

	return nil
}
