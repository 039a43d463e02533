package crypto

import (
	"testing"
	"time"

	"github.com/Noorain464/GoogleDrive/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	gen := NewJWTGenerator("test-secret", time.Hour)
	user := &domain.User{ID: "user-1", Email: "alice@example.com"}

	token, err := gen.New(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := gen.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	gen := NewJWTGenerator("test-secret", time.Hour)
	other := NewJWTGenerator("other-secret", time.Hour)

	token, err := gen.New(&domain.User{ID: "user-1"})
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	gen := NewJWTGenerator("test-secret", -time.Minute)

	token, err := gen.New(&domain.User{ID: "user-1"})
	require.NoError(t, err)

	_, err = gen.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	gen := NewJWTGenerator("test-secret", time.Hour)
	_, err := gen.Verify("not-a-token")
	assert.Error(t, err)
}
