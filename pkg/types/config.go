package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "audioscout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for catalog keyword searches.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Limit is the number of items requested per keyword (default 50).
	Limit int `json:"limit" yaml:"limit"`

	// Market is an optional ISO 3166-1 country code restricting the
	// catalog view (e.g. "US"). Empty means the catalog default.
	Market string `json:"market,omitempty" yaml:"market,omitempty"`

	// RequestDelay is the throttle interval between consecutive keyword
	// lookups (default 500ms). It exists only to stay under the catalog
	// API's rate limits.
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// StoreConfig holds settings for the run history store.
type StoreConfig struct {
	// DataDir is the directory holding the history database (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config groups all stage configurations.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}

// Defaults returns a Config populated with the standard defaults.
func Defaults() Config {
	return Config{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   15 * time.Second,
				UserAgent: "audioscout/0.1",
			},
			Limit:        50,
			RequestDelay: 500 * time.Millisecond,
		},
		Store: StoreConfig{
			DataDir: "data",
		},
	}
}
