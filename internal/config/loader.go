package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if HIRING_CONFIG is set
//  3. env (prefix HIRING_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("HIRING_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: HIRING_ADDR, HIRING_SPREADSHEET_ID, ...
	// Keys map flat onto the koanf tags, underscores preserved.
	envProvider := env.Provider("HIRING_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "hiring_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SpreadsheetID == "":
		return fmt.Errorf("%w: spreadsheet_id is required", ErrInvalidConfig)
	case c.CacheTTLSeconds <= 0:
		return fmt.Errorf("%w: cache_ttl_seconds must be positive", ErrInvalidConfig)
	case c.RetryMaxAttempts <= 0:
		return fmt.Errorf("%w: retry_max_attempts must be positive", ErrInvalidConfig)
	case c.TopNDefault <= 0 || c.MaxTopLimit < c.TopNDefault:
		return fmt.Errorf("%w: top-n bounds are inconsistent", ErrInvalidConfig)
	case c.ActiveWorksheet == "" || c.DeniedWorksheet == "" || c.HiredWorksheet == "":
		return fmt.Errorf("%w: worksheet titles must not be empty", ErrInvalidConfig)
	}
	return nil
}
