package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/checkmygrade/internal/app/models"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: exp, TokenIssuer: "checkmygrade.test"})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	account := &models.Account{UserID: "ada@sjsu.edu", Role: models.RoleStudent}

	token, expiresIn, err := svc.GenerateAccessToken(account)
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@sjsu.edu", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	account := &models.Account{UserID: "ada@sjsu.edu", Role: models.RoleStudent}

	t.Run("expired", func(t *testing.T) {
		token, _, err := newTestJWTService(-time.Minute).GenerateAccessToken(account)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "checkmygrade.test"})
		token, _, err := other.GenerateAccessToken(account)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.ValidateAndExtractClaims("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	token, err = ExtractBearerToken("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCheckPassword(t *testing.T) {
	assert.True(t, CheckPassword("engine", "engine"))
	assert.False(t, CheckPassword("engine", "Engine"))
	assert.False(t, CheckPassword("engine", ""))
}
