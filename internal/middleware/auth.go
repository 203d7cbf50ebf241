package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"expense-api/internal/logging"
	"expense-api/internal/models"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

var (
	// ErrUnauthenticated wraps every reason a presented token is refused.
	ErrUnauthenticated = errors.New("unauthenticated")
	errMissingToken    = errors.New("missing bearer token")
	errMissingClaim    = errors.New("token has no subject")
	errUnknownIdentity = errors.New("identity not found")
)

// UserFinder is the part of the credential store the gate needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticator resolves bearer tokens to stored users.
type Authenticator struct {
	tokens *util.TokenService
	users  UserFinder
	log    *slog.Logger
}

func NewAuthenticator(tokens *util.TokenService, users UserFinder, log *slog.Logger) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		users:  users,
		log:    logging.WithComponent(log, logging.ComponentAuth),
	}
}

// Resolve verifies token and loads the user named by its subject claim.
// Any refusal wraps ErrUnauthenticated; store failures are returned unwrapped.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, errMissingToken)
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	email := claims.Email()
	if email == "" {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, errMissingClaim)
	}

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, errUnknownIdentity)
		}
		return nil, err
	}
	return user, nil
}

// Middleware rejects requests without a valid token and stores the resolved
// user in the gin context. Callers always see the same 401 body; the reason is
// only logged.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Resolve(c.Request.Context(), bearerToken(c))
		if err != nil {
			if errors.Is(err, ErrUnauthenticated) {
				a.log.Info("request rejected",
					logging.FieldPath, c.FullPath(),
					logging.FieldReason, reason(err),
					logging.FieldClientIP, c.ClientIP(),
				)
				c.Header("WWW-Authenticate", "Bearer")
				util.Abort(c, http.StatusUnauthorized, util.CodeAuth, "Could not validate credentials")
				return
			}
			a.log.Error("resolve identity", logging.FieldError, err)
			util.Abort(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by Middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func bearerToken(c *gin.Context) string {
	// 1) Authorization: Bearer xxx
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	// 2) ?token=xxx, for downloads that cannot set headers
	return c.Query("token")
}

func reason(err error) string {
	switch {
	case errors.Is(err, util.ErrTokenExpired):
		return "expired"
	case errors.Is(err, util.ErrTokenInvalid):
		return "invalid"
	case errors.Is(err, errMissingToken):
		return "missing"
	case errors.Is(err, errMissingClaim):
		return "missing_claim"
	case errors.Is(err, errUnknownIdentity):
		return "unknown_identity"
	default:
		return "other"
	}
}
