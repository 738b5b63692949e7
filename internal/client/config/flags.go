package config

import (
	"flag"
	"os"
	"time"

	"github.com/desirppc/parcelace/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the backend API
//	-s string   path to the sqlite session store
//	-r string   redis address for the shared session store
//	-w int      renewal warning threshold in minutes
//
// Args are pre-filtered with flagx.FilterArgs so flags owned by other
// packages pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-r", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "path to the sqlite session store")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address for the shared session store")
	warnAfter := fs.Int("w", int(cfg.RenewalWarnAfter.Minutes()), "renewal warning threshold (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RenewalWarnAfter = time.Duration(*warnAfter) * time.Minute
}
