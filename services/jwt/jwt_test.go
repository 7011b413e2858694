package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "secret", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	claims, err := ValidateAndGetClaims(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["id"])
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "secret", time.Now().Add(time.Hour).Unix())
	require.NoError(t, err)

	_, err = ValidateAndGetClaims(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken(42, "secret", time.Now().Add(-time.Hour).Unix())
	require.NoError(t, err)

	_, err = ValidateAndGetClaims(token, "secret")
	assert.Error(t, err)
}

func TestGenerateRequiresSecret(t *testing.T) {
	_, err := GenerateToken(42, "", time.Now().Add(time.Hour).Unix())
	assert.Error(t, err)
}
