package database

import (
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/models"
)

// Migrate brings the schema up to date for all application models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Recipe{},
	)
}
