package util

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher produces salted bcrypt digests. The salt is embedded in the
// digest, so hashing the same password twice yields different strings.
type PasswordHasher struct {
	Cost int
}

// NewPasswordHasher returns a hasher with the given cost, falling back to
// bcrypt.DefaultCost when cost is out of range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{Cost: cost}
}

// HashPassword returns the bcrypt digest of password.
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored digest.
// A malformed digest is a mismatch, not an error.
func (h *PasswordHasher) CheckPassword(password, stored string) bool {
	if stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
