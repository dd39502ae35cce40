package config

import (
	"flag"
	"fmt"
	"io"
)

const (
	bulkModeBulk = "bulk"
	bulkModeEach = "each"
)

// ownedFlags are the flags parseFlags understands. Everything else belongs
// to the command tree.
var ownedFlags = []string{
	"-server",
	"-timeout",
	"-poll-interval",
	"-poll-max-errors",
	"-weight",
	"-concurrency",
	"-bulk-mode",
	"-cache",
	"-cache-ttl",
	"-log-level",
	"-log-format",
}

// parseFlags applies command-line overrides on top of cfg. args must hold
// only owned flags.
func parseFlags(cfg *Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("vidbatch", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "backend base URL")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout (0 = transport default)")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "job status poll interval")
	fs.IntVar(&cfg.PollMaxErrors, "poll-max-errors", cfg.PollMaxErrors, "consecutive poll failures before giving up (0 = never)")
	fs.Float64Var(&cfg.TransferWeight, "weight", cfg.TransferWeight, "share of upload progress given to the transfer")
	fs.IntVar(&cfg.BulkConcurrency, "concurrency", cfg.BulkConcurrency, "parallel requests for per-item bulk operations (0 = unlimited)")
	fs.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "local cache database path")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "cached listing lifetime")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json or console")

	mode := bulkModeEach
	if cfg.PreferBulk {
		mode = bulkModeBulk
	}
	fs.StringVar(&mode, "bulk-mode", mode, `"bulk" or "each"`)

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch mode {
	case bulkModeBulk:
		cfg.PreferBulk = true
	case bulkModeEach:
		cfg.PreferBulk = false
	default:
		return fmt.Errorf("bulk mode %q: want %q or %q", mode, bulkModeBulk, bulkModeEach)
	}
	return nil
}
