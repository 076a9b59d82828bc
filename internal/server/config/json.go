package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophvote/internal/flagx"
	"github.com/dmitrijs2005/gophvote/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	Address       string         `json:"address"`
	SecretKey     string         `json:"secret_key"`
	TokenValidity timex.Duration `json:"token_validity"`
	Roster        []string       `json:"roster"`
	LogFormat     string         `json:"log_format"`
}

// parseJson overlays Config with the JSON file named by -c or -config.
// Keys that are absent keep their current value. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.Address != "" {
		cfg.Address = jc.Address
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidity.Duration > 0 {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	if jc.Roster != nil {
		cfg.Roster = jc.Roster
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
}
