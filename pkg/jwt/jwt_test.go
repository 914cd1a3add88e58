package jwt

import (
	"testing"
	"time"

	"activity-booking-service/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: expiry,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "customer@example.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "customer@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	token, err := svc.GenerateAccessToken(uuid.New(), "customer@example.com", "customer")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "different-secret", AccessExpiry: 15 * time.Minute})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(-1 * time.Minute)
	token, err := svc.GenerateAccessToken(uuid.New(), "customer@example.com", "customer")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
