package config

import (
	"os"
	"strings"

	"remltab/internal/errors"
)

// Config holds the runtime settings for report parsing. All values
// have working defaults; environment variables override them.
type Config struct {
	// Extension is the report file extension stripped during filename
	// decoding, dot included.
	Extension string
	// NAMarker is the token that marks a missing value inside a
	// component row.
	NAMarker string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Extension: getEnv("REMLTAB_EXTENSION", ".reml"),
		NAMarker:  getEnv("REMLTAB_NA_MARKER", "NA"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.Extension, ".") {
		return errors.ConfigInvalid("REMLTAB_EXTENSION must start with a dot")
	}
	if c.NAMarker == "" {
		return errors.ConfigInvalid("REMLTAB_NA_MARKER must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
