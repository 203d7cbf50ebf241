package database

import (
	"fmt"

	"expense-api/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the users, expenses and budgets tables.
// Safe to run on every start.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.Budget{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
