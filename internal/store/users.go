package store

import (
	"context"
	"errors"
	"fmt"

	"expense-api/internal/models"
	"expense-api/internal/util"

	"gorm.io/gorm"
)

// Users is the credential store.
type Users struct {
	db     *gorm.DB
	hasher *util.PasswordHasher
}

func NewUsers(db *gorm.DB, hasher *util.PasswordHasher) *Users {
	return &Users{db: db, hasher: hasher}
}

// FindByEmail looks a user up by exact email match.
func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Create hashes password and stores a new user. A second registration for the
// same email fails with ErrDuplicateEmail, whether caught by the pre-check or by
// the unique index.
func (s *Users) Create(ctx context.Context, email, fullName, password string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is empty", ErrInvalidInput)
	}

	if _, err := s.FindByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user := models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate returns the user when email exists and password matches.
func (s *Users) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
