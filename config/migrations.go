package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/hotelflex/models"
)

// Migrations applies the archive schema.
func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20260901_create_survey_submissions",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.SurveySubmission{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("survey_submissions")
			},
		},
	})
	return m.Migrate()
}
