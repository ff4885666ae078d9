// Package config defines process configuration and its loading rules.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration for the server and the batch runner.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// DatabaseURL is the Postgres DSN. Empty runs on in-memory stores
	// (dev mode).
	DatabaseURL string `koanf:"database_url"`

	// RedisURL enables the Redis lookup cache when set. Empty falls back to
	// the in-process cache.
	RedisURL          string        `koanf:"redis_url"`
	RedisPoolSize     int           `koanf:"redis_pool_size"`
	RedisMinIdleConns int           `koanf:"redis_min_idle_conns"`
	RedisDialTimeout  time.Duration `koanf:"redis_dial_timeout"`
	RedisReadTimeout  time.Duration `koanf:"redis_read_timeout"`
	RedisWriteTimeout time.Duration `koanf:"redis_write_timeout"`

	// KafkaBrokers enables the attempt-event feed when non-empty.
	KafkaBrokers []string `koanf:"kafka_brokers"`
	KafkaTopic   string   `koanf:"kafka_topic"`

	// LookupTimeout bounds one portal request end to end.
	LookupTimeout time.Duration `koanf:"lookup_timeout"`

	// LookupUserAgent is sent on every portal request. State portals reject
	// the default Go client UA.
	LookupUserAgent string `koanf:"lookup_user_agent"`

	// LookupCacheTTL enforces retention for cached portal responses served
	// by the on-demand lookup API.
	LookupCacheTTL time.Duration `koanf:"lookup_cache_ttl"`

	// SnapshotMaxBytes truncates raw portal responses before they ride on
	// attempt log entries.
	SnapshotMaxBytes int `koanf:"snapshot_max_bytes"`

	// VirginiaBaseURL and NorthCarolinaBaseURL point the board clients at an
	// alternate portal host, e.g. a local stub while working on parsers.
	// Empty means the live state portals.
	VirginiaBaseURL      string `koanf:"virginia_base_url"`
	NorthCarolinaBaseURL string `koanf:"north_carolina_base_url"`

	// VerifyMaxAttempts caps tries per verification run, first call
	// included.
	VerifyMaxAttempts int `koanf:"verify_max_attempts"`

	// VerifyBackoffBase and VerifyBackoffMax shape the retry schedule:
	// base, 2*base, 4*base, ... capped at max.
	VerifyBackoffBase time.Duration `koanf:"verify_backoff_base"`
	VerifyBackoffMax  time.Duration `koanf:"verify_backoff_max"`

	// BatchDelay is the minimum spacing between consecutive providers in a
	// sweep (politeness toward the portals).
	BatchDelay time.Duration `koanf:"batch_delay"`

	// SeedDevData loads the development provider fixtures at startup when
	// running on in-memory stores.
	SeedDevData bool `koanf:"seed_dev_data"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",

		RedisPoolSize:     10,
		RedisMinIdleConns: 2,
		RedisDialTimeout:  5 * time.Second,
		RedisReadTimeout:  3 * time.Second,
		RedisWriteTimeout: 3 * time.Second,

		KafkaTopic: "licensure.verification.attempts",

		LookupTimeout:   15 * time.Second,
		LookupUserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		LookupCacheTTL:  5 * time.Minute,

		SnapshotMaxBytes: 5000,

		VerifyMaxAttempts: 3,
		VerifyBackoffBase: time.Second,
		VerifyBackoffMax:  8 * time.Second,

		BatchDelay: 2 * time.Second,
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML) if LICENSURE_CONFIG is set
//  3. env (prefix LICENSURE_)
func Load() (*Config, error) {
	base := Default()

	k := koanf.New(".")

	if path := os.Getenv("LICENSURE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Environment variables: LICENSURE_ADDR, LICENSURE_DATABASE_URL, ...
	// Map env keys like LICENSURE_LOOKUP_TIMEOUT -> lookup_timeout (flat
	// keys, underscores preserved to match koanf tags on the struct).
	envProvider := env.Provider("LICENSURE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "licensure_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if c.LookupTimeout <= 0 {
		return errors.New("lookup_timeout must be positive")
	}
	if c.SnapshotMaxBytes <= 0 {
		return errors.New("snapshot_max_bytes must be positive")
	}
	if c.VerifyMaxAttempts < 1 {
		return errors.New("verify_max_attempts must be at least 1")
	}
	if c.VerifyBackoffBase <= 0 || c.VerifyBackoffMax < c.VerifyBackoffBase {
		return errors.New("verify backoff bounds must satisfy 0 < base <= max")
	}
	if c.BatchDelay < 0 {
		return errors.New("batch_delay must not be negative")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("kafka_topic required when brokers are configured")
	}
	return nil
}
