package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied when the environment does not override them.
const (
	defaultPort                 = 8080
	defaultLogLevel             = "info"
	defaultEnv                  = "development"
	defaultTokenLifetimeMinutes = 24 * 60         // one day
	defaultUploadMaxBytes       = 5 * 1024 * 1024 // 5 MiB
)

// Load reads configuration from environment variables with the PROFILED_
// prefix (e.g. PROFILED_DATABASE_URL, PROFILED_AUTH_JWT_SECRET).
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("server.env", defaultEnv)
	v.SetDefault("auth.token_lifetime_minutes", defaultTokenLifetimeMinutes)
	v.SetDefault("upload.max_bytes", defaultUploadMaxBytes)

	// Environment variables take precedence over defaults.
	// Nested keys map as server.port -> PROFILED_SERVER_PORT.
	v.SetEnvPrefix("PROFILED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not surface unset keys through Unmarshal, so bind
	// the required ones explicitly.
	for _, key := range []string{
		"server.port", "server.log_level", "server.env",
		"database.url",
		"auth.jwt_secret", "auth.token_lifetime_minutes",
		"upload.max_bytes",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
