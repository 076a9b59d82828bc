package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophvote/internal/flagx"
	"github.com/dmitrijs2005/gophvote/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the current value untouched.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	Mode           string         `json:"mode"`
	DatabasePath   string         `json:"database_path"`
	KeyFile        string         `json:"key_file"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogFormat      string         `json:"log_format"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Panics on read or unmarshal errors.
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

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.Mode, jc.Mode)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.KeyFile, jc.KeyFile)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
