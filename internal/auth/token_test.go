package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	token, err := IssueToken(secret, userID, "asha@example.com", "user", time.Hour)
	require.NoError(t, err)

	id, claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	require.Equal(t, userID, id)
	require.Equal(t, "asha@example.com", claims.Email)
	require.Equal(t, "user", claims.Role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("secret-a"), uuid.New(), "a@b.com", "user", time.Hour)
	require.NoError(t, err)

	_, _, err = ParseToken([]byte("secret-b"), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, uuid.New(), "a@b.com", "user", -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseToken(secret, token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestParse_Garbage(t *testing.T) {
	_, _, err := ParseToken([]byte("test-secret"), "not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
