package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/vidbatch/internal/client/outputs"
	"github.com/dmitrijs2005/vidbatch/internal/client/upload"
	"github.com/dmitrijs2005/vidbatch/internal/flagx"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

const TokenEnv = "VIDBATCH_TOKEN"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	ServerURL      string
	Token          string
	RequestTimeout time.Duration

	PollInterval  time.Duration
	PollMaxErrors int

	TransferWeight  float64
	BulkConcurrency int
	PreferBulk      bool

	CachePath string
	CacheTTL  time.Duration

	LogLevel  string
	LogFormat string

	S3 outputs.S3Config
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000/api/video-processor"
	c.RequestTimeout = 0
	c.PollInterval = 2 * time.Second
	c.PollMaxErrors = 0
	c.TransferWeight = upload.DefaultTransferWeight
	c.BulkConcurrency = 0
	c.PreferBulk = true
	c.CachePath = "vidbatch.db"
	c.CacheTTL = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
	c.S3 = outputs.S3Config{Region: "us-east-1"}
}

// Load builds a Config from defaults, the config file named in args, the
// environment and the flags in args, and validates it. It returns the
// arguments that were not consumed, for the command tree.
func Load(args []string, getenv func(string) string) (*Config, []string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFile(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, nil, err
		}
	}
	if tok := getenv(TokenEnv); tok != "" {
		cfg.Token = tok
	}
	if err := parseFlags(cfg, flagx.FilterArgs(args, ownedFlags), io.Discard); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	rest := flagx.StripArgs(args, append(append([]string{}, ownedFlags...), flagx.ConfigFileFlags...))
	return cfg, rest, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: server url %q must be an http(s) URL", ErrInvalid, c.ServerURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalid)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive, got %s", ErrInvalid, c.PollInterval)
	}
	if c.PollMaxErrors < 0 {
		return fmt.Errorf("%w: poll max errors must not be negative", ErrInvalid)
	}
	if err := (upload.Policy{TransferWeight: c.TransferWeight}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.BulkConcurrency < 0 {
		return fmt.Errorf("%w: bulk concurrency must not be negative", ErrInvalid)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache ttl must not be negative", ErrInvalid)
	}
	if _, err := logging.New(c.LogFormat, c.LogLevel, io.Discard); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
