package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if CLASSPULSE_CONFIG is set
//  3. env (prefix CLASSPULSE_)
func Load(ctx context.Context) (*Config, error) {
	// Pick up a local .env first so its variables join the env layer.
	// Missing files are fine; a real .env with bad syntax is not.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("CLASSPULSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: CLASSPULSE_LOG_LEVEL, CLASSPULSE_FEED_LIMIT, ...
	// Map env keys like CLASSPULSE_FEED_LIMIT -> feed_limit (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("CLASSPULSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "classpulse_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects values the widget cannot run with. Log level and
// format stay unchecked here; the logger falls back on its own.
func (c *Config) validate() error {
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, c.Locale, err)
	}
	if c.FeedLimit < 0 {
		return fmt.Errorf("%w: feed_limit must not be negative", ErrInvalidConfig)
	}
	if c.SearchFocusDelayMS < 0 {
		return fmt.Errorf("%w: search_focus_delay_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}

// LocaleTag parses the configured locale. Call after Load; the value
// was already validated there.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
