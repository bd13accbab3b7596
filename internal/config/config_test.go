package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("DB_CONN", "host=localhost user=test dbname=dailyaura sslmode=disable")
	t.Setenv("JWT_SECRET", "super-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, "http://localhost:5173", cfg.FrontendURL)
	assert.Equal(t, "*", cfg.AllowedOrigins)
}

func TestNewConfigRequiresDBConn(t *testing.T) {
	t.Setenv("DB_CONN", "")
	t.Setenv("JWT_SECRET", "super-secret")

	_, err := NewConfig()
	assert.EqualError(t, err, "DB_CONN is required")
}

func TestNewConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("DB_CONN", "host=localhost user=test dbname=dailyaura sslmode=disable")
	t.Setenv("JWT_SECRET", "")

	_, err := NewConfig()
	assert.EqualError(t, err, "JWT_SECRET is required")
}
