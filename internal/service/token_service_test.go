package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "brokerwallet")
	userID := uuid.New()

	token, expiresAt, err := svc.Generate(userID, false)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestJWTTokenService_AdminClaim(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "brokerwallet")
	userID := uuid.New()

	token, _, err := svc.Generate(userID, true)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestJWTTokenService_WrongSecret(t *testing.T) {
	svc := NewJWTTokenService("secret-a", time.Hour, "brokerwallet")
	other := NewJWTTokenService("secret-b", time.Hour, "brokerwallet")

	token, _, err := svc.Generate(uuid.New(), false)
	require.NoError(t, err)

	claims, err := other.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTTokenService_ExpiredToken(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", -time.Hour, "brokerwallet")

	token, _, err := svc.Generate(uuid.New(), false)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTTokenService_GarbageToken(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "brokerwallet")

	claims, err := svc.Validate("not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
