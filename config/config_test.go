package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "DB_NAME", "JWT_SECRET", "JWT_EXPIRE", "AUTH_MODE", "MOCK_TOKEN"} {
		t.Setenv(key, "")
	}

	LoadConfig()

	assert.Equal(t, "5000", Port)
	assert.Equal(t, "mongodb://localhost:27017", MongoURI)
	assert.Equal(t, "lims", DBName)
	assert.Equal(t, []byte("secret"), JWTKey)
	assert.Equal(t, 24*time.Hour, JWTExpiration)
	assert.Equal(t, AuthModeJWT, AuthMode)
	assert.Equal(t, "mock-token", MockToken)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("DB_NAME", "lims_test")
	t.Setenv("JWT_SECRET", "hunter2")
	t.Setenv("JWT_EXPIRE", "2h")
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("MOCK_TOKEN", "dev-token")

	LoadConfig()

	assert.Equal(t, "8088", Port)
	assert.Equal(t, "mongodb://db:27017", MongoURI)
	assert.Equal(t, "lims_test", DBName)
	assert.Equal(t, []byte("hunter2"), JWTKey)
	assert.Equal(t, 2*time.Hour, JWTExpiration)
	assert.Equal(t, AuthModeMock, AuthMode)
	assert.Equal(t, "dev-token", MockToken)
}

func TestLoadConfigSevenDayExpiry(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "7d")

	LoadConfig()

	assert.Equal(t, 7*24*time.Hour, JWTExpiration)
}

func TestLoadConfigBadExpiryFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "soon")

	LoadConfig()

	assert.Equal(t, 24*time.Hour, JWTExpiration)
}
