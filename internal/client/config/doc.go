// Package config loads runtime configuration for the voting client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally preloaded from a dotenv file given
//     with -e or -env (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the election API
//	-m string   "live" or "demo" (demo runs the election in-process)
//	-d string   path of the local database
//	-k string   path of the device secret file
//	-t int      request timeout (seconds)
//	-l string   log format: text, json or zerolog
//
// Environment
//
//	VOTE_API_URL    base URL of the election API
//	VOTE_MODE       live or demo
//	VOTE_LOG_LEVEL  debug, info, warn or error
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://vote.example.edu",
//	  "mode": "live",
//	  "database_path": "vote.db",
//	  "key_file": "vote.key",
//	  "request_timeout": "30s",
//	  "log_format": "text",
//	  "log_level": "info"
//	}
package config
