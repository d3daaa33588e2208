// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and environment vars.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SpreadsheetID identifies the backing Google spreadsheet.
	SpreadsheetID string `koanf:"spreadsheet_id"`

	// CredentialsFile points at the service-account JSON key.
	CredentialsFile string `koanf:"credentials_file"`

	// Worksheet titles for each applicant status.
	ActiveWorksheet string `koanf:"active_worksheet"`
	DeniedWorksheet string `koanf:"denied_worksheet"`
	HiredWorksheet  string `koanf:"hired_worksheet"`

	// CacheTTLSeconds bounds the age of a cached worksheet snapshot.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// RetryMaxAttempts and RetryBaseDelayMS shape the connectivity retry
	// budget in the applicant store.
	RetryMaxAttempts int `koanf:"retry_max_attempts"`
	RetryBaseDelayMS int `koanf:"retry_base_delay_ms"`

	// SheetsRatePerSecond and SheetsRateBurst throttle outbound Sheets API
	// calls below the backend quota.
	SheetsRatePerSecond float64 `koanf:"sheets_rate_per_second"`
	SheetsRateBurst     int     `koanf:"sheets_rate_burst"`

	// TopNDefault is the side-panel size; MaxTopLimit caps ?limit.
	TopNDefault int `koanf:"top_n_default"`
	MaxTopLimit int `koanf:"max_top_limit"`
}

// New creates a Config populated with defaults. The spreadsheet id has no
// sensible default and must come from file or environment.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		CredentialsFile:     "credentials.json",
		ActiveWorksheet:     "active",
		DeniedWorksheet:     "denied",
		HiredWorksheet:      "hired",
		CacheTTLSeconds:     30,
		RetryMaxAttempts:    3,
		RetryBaseDelayMS:    500,
		SheetsRatePerSecond: 1,
		SheetsRateBurst:     4,
		TopNDefault:         5,
		MaxTopLimit:         100,
	}
}
