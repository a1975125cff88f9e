package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDevelopmentDefaults(t *testing.T) {
	cfg := &Config{
		Port:      "8460",
		JWTSecret: "your-secret-key-change-in-production",
		Env:       "development",
	}
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.IsProduction())
}

func TestValidateRejectsMissingRequired(t *testing.T) {
	cfg := &Config{JWTSecret: "something"}
	require.Error(t, cfg.Validate())

	cfg = &Config{Port: "8460"}
	require.Error(t, cfg.Validate())
}

func TestValidateProduction(t *testing.T) {
	base := Config{
		Port:       "8460",
		Env:        "production",
		DBPassword: "a-real-database-password",
		DBSSLMode:  "require",
	}

	cfg := base
	cfg.JWTSecret = "your-secret-key-change-in-production"
	assert.ErrorContains(t, cfg.Validate(), "must be changed from the default")

	cfg = base
	cfg.JWTSecret = "too-short"
	assert.ErrorContains(t, cfg.Validate(), "at least 32 characters")

	cfg = base
	cfg.JWTSecret = "a-strong-secret-that-is-32-chars-minimum"
	cfg.DBPassword = "password"
	assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")

	cfg = base
	cfg.JWTSecret = "a-strong-secret-that-is-32-chars-minimum"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsProduction())
}
