package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func authProbe(t *testing.T) (http.Handler, *uuid.UUID, *bool) {
	t.Helper()

	var gotID uuid.UUID
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if id, ok := UserID(r.Context()); ok {
			gotID = id
		}
		w.WriteHeader(http.StatusOK)
	})
	return h, &gotID, &called
}

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	userID := uuid.New()
	token, err := auth.IssueToken([]byte(testSecret), userID, "a@b.com", "user", time.Hour)
	require.NoError(t, err)

	probe, gotID, _ := authProbe(t)
	handler := RequireAuth(testSecret, discard())(probe)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(token))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, *gotID)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	probe, _, called := authProbe(t)
	handler := RequireAuth(testSecret, discard())(probe)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(""))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestRequireAuth_BadToken(t *testing.T) {
	probe, _, called := authProbe(t)
	handler := RequireAuth(testSecret, discard())(probe)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest("garbage"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	probe, gotID, called := authProbe(t)
	handler := OptionalAuth(testSecret, discard())(probe)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(""))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *called)
	require.Equal(t, uuid.Nil, *gotID)
}

func TestOptionalAuth_BadTokenIgnored(t *testing.T) {
	probe, gotID, called := authProbe(t)
	handler := OptionalAuth(testSecret, discard())(probe)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest("garbage"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *called)
	require.Equal(t, uuid.Nil, *gotID)
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := auth.IssueToken([]byte(testSecret), userID, "a@b.com", "user", time.Hour)
	require.NoError(t, err)

	probe, gotID, _ := authProbe(t)
	handler := OptionalAuth(testSecret, discard())(probe)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(token))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, *gotID)
}
