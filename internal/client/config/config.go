// Package config loads runtime settings for the ParcelAce client.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - StorePath: sqlite file backing the persistent session store.
//   - RedisAddr: optional redis address; when set, redis replaces sqlite
//     as the persistent session store.
//   - RenewalWarnAfter: session age past which a re-login is suggested.
type Config struct {
	APIBaseURL       string
	StorePath        string
	RedisAddr        string
	RenewalWarnAfter time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.parcelace.io/api/v1"
	c.StorePath = "parcelace.db"
	c.RedisAddr = ""
	c.RenewalWarnAfter = 30 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
