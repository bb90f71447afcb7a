package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Host       string `envconfig:"HOST" default:"0.0.0.0"`
	Port       int    `envconfig:"PORT" default:"5000"`
	BodyLimit  string `envconfig:"BODY_LIMIT" default:"1M"`
	APIKeys    string `envconfig:"API_KEYS" required:"true"`
	CORSOrigin string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`

	CorpusDir      string `envconfig:"CORPUS_DIR" default:"corpora"`
	RequireCorpora bool   `envconfig:"REQUIRE_CORPORA" default:"false"`
	LoaderWorkers  int    `envconfig:"LOADER_WORKERS" default:"4"`

	// CaseFold is fixed; detection quality depends on both corpora and input
	// being folded the same way.
	CaseFold bool `ignored:"true"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"8"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.CaseFold = true
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.APIKeyList()) == 0 {
		return fmt.Errorf("API_KEYS must contain at least one key")
	}
	if strings.TrimSpace(c.CorpusDir) == "" {
		return fmt.Errorf("CORPUS_DIR is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.LoaderWorkers < 1 {
		return fmt.Errorf("LOADER_WORKERS must be >= 1")
	}
	if strings.TrimSpace(c.BodyLimit) == "" {
		return fmt.Errorf("BODY_LIMIT is required")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

// LedgerEnabled reports whether detections should be recorded in Postgres.
func (c *Config) LedgerEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}

func (c *Config) APIKeyList() []string {
	if c == nil {
		return nil
	}
	return splitList(c.APIKeys)
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}
	return splitList(c.CORSOrigin)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}
	return values
}
