package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracechain/tracechain/pkg/auth"
	"github.com/tracechain/tracechain/pkg/middleware"
	"github.com/tracechain/tracechain/pkg/session"
)

func identityEcho(t *testing.T, wantID, wantRole string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.UserIDFromCtx(r)
		assert.True(t, ok)
		assert.Equal(t, wantID, id)

		role, ok := middleware.RoleFromCtx(r)
		assert.True(t, ok)
		assert.Equal(t, wantRole, role)

		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareInjectsClaims(t *testing.T) {
	token, err := auth.GenerateToken("farmer-1", "farmer")
	require.NoError(t, err)

	h := middleware.AuthMiddleware(identityEcho(t, "farmer-1", "farmer"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	h := middleware.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	h := middleware.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareSessionFallback(t *testing.T) {
	// Simulates a browser client that logged in earlier: the session
	// carries the identity and no bearer token is sent.
	seed := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromCtx(r)
			sess.Set("user_id", "consumer-1")
			sess.Set("role", "consumer")
			next.ServeHTTP(w, r)
		})
	}

	h := session.Middleware(session.DefaultOptions())(
		seed(middleware.AuthMiddleware(identityEcho(t, "consumer-1", "consumer"))))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	h := middleware.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := middleware.UserIDFromCtx(r)
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
