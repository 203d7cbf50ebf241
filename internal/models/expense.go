package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record owned by one user. Amount is kept as
// its decimal string so SQLite never coerces it to a float.
type Expense struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Title       string          `gorm:"size:255;not null"`
	Amount      decimal.Decimal `gorm:"type:TEXT;not null"`
	Category    Category        `gorm:"size:50;index;not null"`
	Description string          `gorm:"type:text"`
	Date        time.Time       `gorm:"index;not null"` // when the spending happened, UTC
	CreatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
