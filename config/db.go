package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the optional submission archive. It stays nil unless DB_DSN is set;
// the workbook is the canonical store either way.
var DB *gorm.DB

// Connect opens the archive database when configured and runs migrations.
func Connect() {
	if App.DBDSN == "" {
		Log.Info("no DB_DSN configured, submission archive disabled")
		return
	}
	db, err := gorm.Open(postgres.Open(App.DBDSN), &gorm.Config{})
	if err != nil {
		Log.Fatalw("failed to connect to archive database", "error", err)
	}
	if err := Migrations(db); err != nil {
		Log.Fatalw("failed to run archive migrations", "error", err)
	}
	DB = db
}
