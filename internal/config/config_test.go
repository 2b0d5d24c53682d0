package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDevConfig() *Config {
	return &Config{
		Port:             "8080",
		JWTSecret:        "your-secret-key-change-in-production",
		JWTExpirySeconds: 36000,
		DBPassword:       "password",
		DBSSLMode:        "disable",
		Env:              "development",
	}
}

func validProdConfig() *Config {
	return &Config{
		Port:             "8080",
		JWTSecret:        strings.Repeat("s", 32),
		JWTExpirySeconds: 36000,
		DBPassword:       "an-actual-strong-password",
		DBSSLMode:        "require",
		Env:              "production",
	}
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	require.NoError(t, validDevConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"zero expiry", func(c *Config) { c.JWTExpirySeconds = 0 }, "JWT_EXPIRY_SECONDS must be positive"},
		{"negative expiry", func(c *Config) { c.JWTExpirySeconds = -1 }, "JWT_EXPIRY_SECONDS must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDevConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateProductionStrictness(t *testing.T) {
	t.Run("valid production config", func(t *testing.T) {
		require.NoError(t, validProdConfig().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"default jwt secret rejected",
			func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" },
			"must be changed from the default",
		},
		{
			"short jwt secret rejected",
			func(c *Config) { c.JWTSecret = "short" },
			"at least 32 characters",
		},
		{
			"default db password rejected",
			func(c *Config) { c.DBPassword = "password" },
			"strong DB_PASSWORD",
		},
		{
			"empty db password rejected",
			func(c *Config) { c.DBPassword = "" },
			"strong DB_PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validProdConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("prod alias enforces the same rules", func(t *testing.T) {
		cfg := validProdConfig()
		cfg.Env = "prod"
		cfg.DBPassword = ""
		require.Error(t, cfg.Validate())
	})
}
