package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired means the signature was valid but exp has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers malformed tokens, bad signatures and wrong algorithms.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the subject (the user's email) plus registered claims.
type Claims struct {
	jwt.RegisteredClaims
}

// Email returns the identity claim.
func (c *Claims) Email() string {
	return c.Subject
}

// TokenService issues and verifies HMAC-signed access tokens.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a service for one of HS256, HS384 or HS512.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("signing secret is empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// SetClock replaces the time source. Tests use it to move past expiry.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for email that expires ttl from now.
func (s *TokenService) Issue(email string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. It returns ErrTokenExpired or
// ErrTokenInvalid (wrapping the parser's reason) on failure.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
