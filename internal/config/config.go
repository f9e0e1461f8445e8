// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// SourceURL is the REST Countries API root.
	SourceURL string `koanf:"source_url"`

	// FetchTimeoutMS bounds one upstream fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// RefreshSchedule is a cron expression for re-fetching the record set.
	// Empty disables refreshing: records are fetched once at start.
	RefreshSchedule string `koanf:"refresh_schedule"`

	// MaxRecords caps the accepted record set size.
	MaxRecords int `koanf:"max_records"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		SourceURL:       "https://restcountries.com/v3.1",
		FetchTimeoutMS:  30_000,
		RefreshSchedule: "",
		MaxRecords:      100_000,
	}
}
