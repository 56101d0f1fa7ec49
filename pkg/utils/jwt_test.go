package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	m := NewJWTManager("test-secret", "report-ai-api")

	pair, err := m.GenerateTokenPair("user-1", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", access.UserID)
	assert.Equal(t, "access", access.Type)
	assert.Equal(t, "report-ai-api", access.Issuer)

	refresh, err := m.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refresh.Type)
}

func TestJWTManager_ParseToken_Errors(t *testing.T) {
	m := NewJWTManager("test-secret", "report-ai-api")

	t.Run("expired token", func(t *testing.T) {
		token, err := m.GenerateToken("user-1", "access", -time.Minute)
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", "report-ai-api")
		token, err := other.GenerateToken("user-1", "access", time.Minute)
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := m.ParseToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_ExpiresWithin(t *testing.T) {
	m := NewJWTManager("test-secret", "report-ai-api")

	token, err := m.GenerateToken("user-1", "access", 2*time.Minute)
	require.NoError(t, err)
	claims, err := m.ParseToken(token)
	require.NoError(t, err)

	assert.True(t, claims.ExpiresWithin(5*time.Minute))
	assert.False(t, claims.ExpiresWithin(time.Minute))

	var nilClaims *Claims
	assert.False(t, nilClaims.ExpiresWithin(time.Minute))
}
