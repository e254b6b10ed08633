// Package config defines widget configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// RosterPath points at an optional YAML roster file. Empty keeps the
	// built-in faculty list.
	RosterPath string `koanf:"roster_path"`

	// Locale sets the collation language for name sorting, e.g. "en" or "sv".
	Locale string `koanf:"locale"`

	// FeedLimit caps the number of entries shown in a teacher's feedback
	// feed. Zero shows everything.
	FeedLimit int `koanf:"feed_limit"`

	// SearchFocusDelayMS delays the search box focus after it opens.
	SearchFocusDelayMS int `koanf:"search_focus_delay_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		RosterPath:         "",
		Locale:             "en",
		FeedLimit:          0,
		SearchFocusDelayMS: 100,
	}
	return c
}
