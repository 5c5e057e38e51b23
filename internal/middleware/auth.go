package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mufaddal-lashkar/safirah-server/internal/auth"

	"github.com/google/uuid"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// UserID returns the verified requester id placed by the auth
// middleware, if any.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID attaches a verified requester id to the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(h, "Bearer "), true
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "no token provided", http.StatusUnauthorized)
				return
			}

			userID, _, err := auth.ParseToken([]byte(secret), token)
			if err != nil {
				logger.Warn("token verification failed", slog.String("error", err.Error()))
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth attaches the requester id when a valid token is present
// and passes the request through anonymously otherwise. A malformed
// token is ignored, not rejected; the feed works for anonymous viewers.
func OptionalAuth(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, _, err := auth.ParseToken([]byte(secret), token)
			if err != nil {
				logger.Debug("optional auth token ignored", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
