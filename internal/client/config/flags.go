package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/notely/internal/flagx"
)

// parseFlags populates Config fields from the -a, -t and -r flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the notes API")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "file holding the saved bearer token")
	fs.DurationVar(&cfg.RequestTimeout, "r", cfg.RequestTimeout, "per-request timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
