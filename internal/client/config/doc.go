// Package config loads runtime configuration for the vidbatch CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. The VIDBATCH_TOKEN environment variable. The bearer token is never
//     accepted as a flag so it stays out of process listings.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-server string         backend base URL including /api/video-processor
//	-timeout duration      per-request timeout, 0 keeps the transport default
//	-poll-interval dur     job status poll interval
//	-poll-max-errors int   stop polling after this many failures in a row, 0 = never
//	-weight float          share of upload progress given to the transfer (0..1)
//	-concurrency int       parallel requests for per-item bulk operations (0 = unlimited)
//	-bulk-mode string      "bulk" for backend bulk endpoints, "each" for one request per item
//	-cache string          path of the local cache database
//	-cache-ttl duration    how long a cached listing is served without refetching
//	-log-level string      debug, info, warn or error
//	-log-format string     text, json or console
//
// # File schema
//
// Durations are strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://api.example.com/api/video-processor",
//	  "poll_interval": "2s",
//	  "cache_ttl": "30s",
//	  "s3": {"region": "us-east-1", "bucket": "outputs"}
//	}
package config
