package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   listen address
//	-s string   token signing secret
//	-t int      token validity (minutes)
//	-r string   comma-separated roster
//	-l string   log format
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "listen address")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "token signing secret")
	validity := fs.Int("t", int(cfg.TokenValidity.Minutes()), "token validity (in minutes)")
	roster := fs.String("r", strings.Join(cfg.Roster, ","), "comma-separated student ids, optionally id=Name")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text, json or zerolog")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidity = time.Duration(*validity) * time.Minute
	cfg.Roster = splitList(*roster)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}
