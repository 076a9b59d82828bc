// Package config handles configuration for the mock election service,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the election service.
//
// Fields:
//   - Address: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidity: lifetime of issued tokens.
//   - Roster: students allowed to log in, as "id" or "id=Name". Empty admits anyone.
//   - LogFormat: text, json or zerolog.
type Config struct {
	Address       string
	SecretKey     string
	TokenValidity time.Duration
	Roster        []string
	LogFormat     string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Address = ":8080"
	c.SecretKey = "secretKey"
	c.TokenValidity = 60 * time.Minute
	c.Roster = nil
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
