package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tracechain/tracechain/pkg/auth"
	"github.com/tracechain/tracechain/pkg/response"
	"github.com/tracechain/tracechain/pkg/session"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	roleKey
)

// AuthMiddleware resolves the caller's identity and stores it in the
// request context for downstream handlers. A bearer token wins; without
// one, a logged-in session (cookie) is accepted so browser clients stay
// authenticated between page loads.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			sess := session.FromCtx(r)
			userID, ok := sess.GetString("user_id")
			if !ok {
				response.Unauthorized(w)
				return
			}
			role, _ := sess.GetString("role")
			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), userID, role)))
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims.UserID, claims.Role)))
	})
}

func withIdentity(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// OptionalAuth resolves the bearer token or session when present but
// lets anonymous requests through. Used on routes with public and
// authenticated variants.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if claims, err := auth.ValidateToken(token); err == nil {
				r = r.WithContext(withIdentity(r.Context(), claims.UserID, claims.Role))
			}
		} else if userID, ok := session.FromCtx(r).GetString("user_id"); ok {
			role, _ := session.FromCtx(r).GetString("role")
			r = r.WithContext(withIdentity(r.Context(), userID, role))
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

// UserIDFromCtx returns the authenticated user's ID, if any.
func UserIDFromCtx(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(userIDKey).(string)
	return id, ok && id != ""
}

// RoleFromCtx returns the authenticated user's role, if any.
func RoleFromCtx(r *http.Request) (string, bool) {
	role, ok := r.Context().Value(roleKey).(string)
	return role, ok && role != ""
}
