package database

import (
	"fmt"

	"github.com/openfund-app/backend/models"
	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Fund{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
