package models

import "time"

// User is an authenticated account. Email is matched exactly as stored.
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	FullName     string    `gorm:"size:255"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
}

