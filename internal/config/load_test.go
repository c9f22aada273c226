package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomhaskel/profiled/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef" // 32 chars

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PROFILED_DATABASE_URL", "postgres://localhost:5432/profiled")
	t.Setenv("PROFILED_AUTH_JWT_SECRET", testSecret)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.Server.IsProduction())
	assert.Equal(t, 1440, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PROFILED_DATABASE_URL", "postgres://localhost:5432/profiled")
	t.Setenv("PROFILED_AUTH_JWT_SECRET", testSecret)
	t.Setenv("PROFILED_SERVER_PORT", "9090")
	t.Setenv("PROFILED_SERVER_ENV", "production")
	t.Setenv("PROFILED_AUTH_TOKEN_LIFETIME_MINUTES", "60")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing database URL",
			env: map[string]string{
				"PROFILED_AUTH_JWT_SECRET": testSecret,
			},
		},
		{
			name: "short JWT secret",
			env: map[string]string{
				"PROFILED_DATABASE_URL":    "postgres://localhost:5432/profiled",
				"PROFILED_AUTH_JWT_SECRET": "too-short",
			},
		},
		{
			name: "invalid log level",
			env: map[string]string{
				"PROFILED_DATABASE_URL":     "postgres://localhost:5432/profiled",
				"PROFILED_AUTH_JWT_SECRET":  testSecret,
				"PROFILED_SERVER_LOG_LEVEL": "verbose",
			},
		},
		{
			name: "invalid environment name",
			env: map[string]string{
				"PROFILED_DATABASE_URL":    "postgres://localhost:5432/profiled",
				"PROFILED_AUTH_JWT_SECRET": testSecret,
				"PROFILED_SERVER_ENV":      "staging",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
