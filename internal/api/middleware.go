package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Noorain464/GoogleDrive/internal/platform/crypto"

	"github.com/rs/zerolog"
)

// CtxKey is a custom type for context keys to avoid collisions.
type CtxKey string

const (
	// UserIDKey is the key for storing the user's ID in the request context.
	UserIDKey CtxKey = "userID"
	// EmailKey is the key for storing the user's email in the request context.
	EmailKey CtxKey = "email"
)

// AuthMiddleware resolves the caller's principal from the request token and
// stores it in the request context. There is no ambient session state: every
// downstream call receives the caller id explicitly.
type AuthMiddleware struct {
	tokenSvc crypto.TokenGenerator
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokenSvc crypto.TokenGenerator) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// RequireAuth checks for a valid token in the Authorization header (Bearer
// scheme) or the "access-token" cookie. On success it adds the user's ID and
// email to the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			if cookie, err := r.Cookie("access-token"); err == nil {
				raw = cookie.Value
			}
		}
		if raw == "" {
			writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Missing authentication token"))
			return
		}

		claims, err := m.tokenSvc.Verify(raw)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Invalid authentication token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// GetUserIDFromContext is a helper function to safely retrieve the user ID
// from the context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// RequestLogger logs one line per request with method, path, status and
// duration.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
