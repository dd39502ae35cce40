package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/vidbatch/internal/timex"
)

// fileConfig mirrors Config for on-disk storage. Absent keys leave the
// current value untouched.
type fileConfig struct {
	ServerURL      *string         `json:"server_url" yaml:"server_url"`
	Token          *string         `json:"token" yaml:"token"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`

	PollInterval  *timex.Duration `json:"poll_interval" yaml:"poll_interval"`
	PollMaxErrors *int            `json:"poll_max_errors" yaml:"poll_max_errors"`

	TransferWeight  *float64 `json:"transfer_weight" yaml:"transfer_weight"`
	BulkConcurrency *int     `json:"bulk_concurrency" yaml:"bulk_concurrency"`
	PreferBulk      *bool    `json:"prefer_bulk" yaml:"prefer_bulk"`

	CachePath *string         `json:"cache_path" yaml:"cache_path"`
	CacheTTL  *timex.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	LogLevel  *string `json:"log_level" yaml:"log_level"`
	LogFormat *string `json:"log_format" yaml:"log_format"`

	S3 *fileS3 `json:"s3" yaml:"s3"`
}

type fileS3 struct {
	Region    *string `json:"region" yaml:"region"`
	Bucket    *string `json:"bucket" yaml:"bucket"`
	Endpoint  *string `json:"endpoint" yaml:"endpoint"`
	AccessKey *string `json:"access_key" yaml:"access_key"`
	SecretKey *string `json:"secret_key" yaml:"secret_key"`
}

func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to parse %s: %w", ErrInvalid, path, err)
	}

	fc.apply(cfg)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}

func (fc *fileConfig) apply(cfg *Config) {
	set(&cfg.ServerURL, fc.ServerURL)
	set(&cfg.Token, fc.Token)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setDuration(&cfg.PollInterval, fc.PollInterval)
	set(&cfg.PollMaxErrors, fc.PollMaxErrors)
	set(&cfg.TransferWeight, fc.TransferWeight)
	set(&cfg.BulkConcurrency, fc.BulkConcurrency)
	set(&cfg.PreferBulk, fc.PreferBulk)
	set(&cfg.CachePath, fc.CachePath)
	setDuration(&cfg.CacheTTL, fc.CacheTTL)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogFormat, fc.LogFormat)

	if s := fc.S3; s != nil {
		set(&cfg.S3.Region, s.Region)
		set(&cfg.S3.Bucket, s.Bucket)
		set(&cfg.S3.Endpoint, s.Endpoint)
		set(&cfg.S3.AccessKey, s.AccessKey)
		set(&cfg.S3.SecretKey, s.SecretKey)
	}
}
