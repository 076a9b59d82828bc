package config

import (
	"os"

	"github.com/dmitrijs2005/gophvote/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envAPIURL   = "VOTE_API_URL"
	envMode     = "VOTE_MODE"
	envLogLevel = "VOTE_LOG_LEVEL"
)

// parseEnv overlays Config with environment variables. When -e/-env names a
// dotenv file it is loaded first; variables already set in the process win
// over the file. Panics if the file cannot be read.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv(envAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(envMode); ok && v != "" {
		cfg.Mode = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
