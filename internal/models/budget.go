package models

import "github.com/shopspring/decimal"

// Budget caps spending for one category in one calendar month.
// At most one row exists per (user, category, month, year). LimitAmount is
// stored as text, like Expense.Amount.
type Budget struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;uniqueIndex:idx_budget_period"`
	Category    Category        `gorm:"size:50;not null;uniqueIndex:idx_budget_period"`
	LimitAmount decimal.Decimal `gorm:"type:TEXT;not null"`
	Month       int             `gorm:"not null;uniqueIndex:idx_budget_period;check:month_valid,month >= 1 AND month <= 12"`
	Year        int             `gorm:"not null;uniqueIndex:idx_budget_period"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
