package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-import/backend/internal/model"
)

// Migrate creates or updates the schema. On postgres the vector extension
// is created first.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to create vector extension: %w", err)
		}
	}
	if err := db.AutoMigrate(&model.ImportedRecipe{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
