package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("unit-test-secret-0123456789abcdefghij")

	token, err := manager.GenerateAccessToken(7, "renter@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, "renter@example.com", claims.Email)
}

func TestTokenManager_RejectsTampering(t *testing.T) {
	manager := NewTokenManager("unit-test-secret-0123456789abcdefghij")
	other := NewTokenManager("another-secret-0123456789abcdefghijkl")

	token, err := other.GenerateAccessToken(7, "")
	assert.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager := NewTokenManager("unit-test-secret-0123456789abcdefghij")
	_, err := manager.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
