package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered to the flags handled here so that -c and -e do not trip the
// parser. Panics on malformed values or an unknown mode.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-d", "-k", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the election API")
	fs.StringVar(&cfg.Mode, "m", cfg.Mode, "mode: live or demo")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	fs.StringVar(&cfg.KeyFile, "k", cfg.KeyFile, "path of the device secret file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text, json or zerolog")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if cfg.Mode != ModeLive && cfg.Mode != ModeDemo {
		panic(fmt.Sprintf("unknown mode %q", cfg.Mode))
	}
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
