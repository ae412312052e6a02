package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uplifts-neel/lab-inventory-managment/config"
)

func TestJWTRoundTrip(t *testing.T) {
	config.JWTKey = []byte("test-secret")
	config.JWTExpiration = time.Hour

	token, err := GenerateJWT("60d5ec49f8c7d10015f8e123", "Alice", "Admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, "60d5ec49f8c7d10015f8e123", claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "Admin", claims.Role)
}

func TestValidateJWTExpired(t *testing.T) {
	config.JWTKey = []byte("test-secret")
	config.JWTExpiration = -time.Minute

	token, err := GenerateJWT("60d5ec49f8c7d10015f8e123", "Alice", "Admin")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateJWTWrongKey(t *testing.T) {
	config.JWTKey = []byte("test-secret")
	config.JWTExpiration = time.Hour

	token, err := GenerateJWT("60d5ec49f8c7d10015f8e123", "Alice", "Admin")
	require.NoError(t, err)

	config.JWTKey = []byte("other-secret")
	claims, err := ValidateJWT(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateJWTGarbage(t *testing.T) {
	config.JWTKey = []byte("test-secret")

	claims, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
