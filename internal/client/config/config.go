package config

import "time"

const (
	ModeLive = "live"
	ModeDemo = "demo"

	DefaultAPIBaseURL = "https://fue-vote-backend-1.onrender.com"
)

// Config holds runtime settings for the voting client.
type Config struct {
	APIBaseURL     string
	Mode           string
	DatabasePath   string
	KeyFile        string
	RequestTimeout time.Duration
	LogFormat      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.Mode = ModeLive
	c.DatabasePath = "vote.db"
	c.KeyFile = "vote.key"
	c.RequestTimeout = 30 * time.Second
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// Demo reports whether the client should run against the built-in election.
func (c *Config) Demo() bool {
	return c.Mode == ModeDemo
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
