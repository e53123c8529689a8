package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/pgdesk/internal/flagx"
)

// parseFlags overlays cfg with the short flags documented in the package doc.
// Unknown flags are filtered out first so other components can own them.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-t", "-s", "-d", "-l"})

	fs := flag.NewFlagSet("pgdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "API base URL")
	timeoutMs := fs.Int("t", int(cfg.Timeout.Milliseconds()), "request timeout (in milliseconds)")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver: sqlite|redis")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Timeout = time.Duration(*timeoutMs) * time.Millisecond
	return nil
}
