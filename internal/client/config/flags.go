package config

import (
	"flag"
	"os"
	"time"

	"github.com/virtual-arena/arena-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the Arena API (default from Config)
//	-d string   session database path (default from Config)
//	-t int      HTTP timeout in seconds, 0 for none (default from Config)
//	-l int      articles per page (default from Config)
//	-v          debug logging
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with the -c/-config flags
// handled by the JSON stage.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-l", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the Arena API")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "session database path")
	timeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "HTTP timeout in seconds (0 = none)")
	fs.IntVar(&cfg.PageLimit, "l", cfg.PageLimit, "articles per page")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*timeout) * time.Second
}
