package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expense-api/internal/logging"
	"expense-api/internal/models"
	"expense-api/internal/store"
	"expense-api/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f[email]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

type brokenUsers struct{}

func (brokenUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, errors.New("disk on fire")
}

func newGate(t *testing.T, users UserFinder) (*Authenticator, *util.TokenService) {
	t.Helper()
	tokens, err := util.NewTokenService("gate-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)
	return NewAuthenticator(tokens, users, logging.Discard()), tokens
}

func TestResolve(t *testing.T) {
	alice := &models.User{ID: 7, Email: "alice@example.com"}
	gate, tokens := newGate(t, fakeUsers{alice.Email: alice})

	token, err := tokens.Issue(alice.Email)
	require.NoError(t, err)

	user, err := gate.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
}

func TestResolve_Refusals(t *testing.T) {
	gate, tokens := newGate(t, fakeUsers{})
	ctx := context.Background()

	ghost, _ := tokens.Issue("ghost@example.com")
	noSubject, _ := tokens.Issue("")

	issued := time.Now()
	tokens.SetClock(func() time.Time { return issued.Add(-time.Hour) })
	expired, _ := tokens.Issue("old@example.com")
	tokens.SetClock(time.Now)

	cases := map[string]struct {
		token  string
		reason string
	}{
		"missing":      {"", "missing"},
		"garbage":      {"garbage", "invalid"},
		"expired":      {expired, "expired"},
		"no subject":   {noSubject, "missing_claim"},
		"deleted user": {ghost, "unknown_identity"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := gate.Resolve(ctx, tc.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnauthenticated)
			assert.Equal(t, tc.reason, reason(err))
		})
	}
}

func TestResolve_StoreFailureIsNotAnAuthFailure(t *testing.T) {
	gate, tokens := newGate(t, brokenUsers{})
	token, _ := tokens.Issue("a@example.com")

	_, err := gate.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthenticated)
}

func serve(gate *Authenticator, req *http.Request) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gate.Middleware())
	r.GET("/who", func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, user.Email)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware(t *testing.T) {
	alice := &models.User{ID: 1, Email: "alice@example.com"}
	gate, tokens := newGate(t, fakeUsers{alice.Email: alice})
	token, _ := tokens.Issue(alice.Email)

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(gate, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, alice.Email, w.Body.String())

	// lower-case scheme
	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "bearer "+token)
	assert.Equal(t, http.StatusOK, serve(gate, req).Code)

	// query parameter fallback
	req = httptest.NewRequest(http.MethodGet, "/who?token="+token, nil)
	assert.Equal(t, http.StatusOK, serve(gate, req).Code)
}

func TestMiddleware_SameBodyForEveryRefusal(t *testing.T) {
	gate, tokens := newGate(t, fakeUsers{})
	ghost, _ := tokens.Issue("ghost@example.com")

	var bodies []string
	for _, header := range []string{"", "Bearer nope", "Basic abc", "Bearer " + ghost} {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := serve(gate, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		bodies = append(bodies, w.Body.String())
	}
	for _, b := range bodies[1:] {
		assert.JSONEq(t, bodies[0], b)
	}
}

func TestMiddleware_StoreFailure(t *testing.T) {
	gate, tokens := newGate(t, brokenUsers{})
	token, _ := tokens.Issue("a@example.com")

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, serve(gate, req).Code)
}
