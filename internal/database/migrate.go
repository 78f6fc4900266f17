package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/ingredient-macros/backend/internal/model"
)

// Migrate creates or updates the ingredient tables
func Migrate(db *gorm.DB) error {
	log.Printf("Running %s auto-migration", db.Dialector.Name())
	if err := db.AutoMigrate(&model.IngredientRecord{}, &model.MacronutrientRecord{}); err != nil {
		return fmt.Errorf("failed to migrate ingredient tables: %w", err)
	}
	return nil
}

// ImportIngredients appends items after any existing rows, keeping their order.
// With reset, existing rows are removed first. The import is atomic.
func ImportIngredients(ctx context.Context, db *gorm.DB, items []model.Ingredient, reset bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if reset {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.MacronutrientRecord{}).Error; err != nil {
				return fmt.Errorf("failed to clear macronutrients: %w", err)
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.IngredientRecord{}).Error; err != nil {
				return fmt.Errorf("failed to clear ingredients: %w", err)
			}
		}

		var start int64
		if err := tx.Model(&model.IngredientRecord{}).Count(&start).Error; err != nil {
			return fmt.Errorf("failed to count ingredients: %w", err)
		}

		for i, ing := range items {
			rec := model.NewIngredientRecord(int(start)+i, ing)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to import ingredient %d: %w", ing.ID, err)
			}
		}

		log.Printf("Imported %d ingredients (reset=%t)", len(items), reset)
		return nil
	})
}
