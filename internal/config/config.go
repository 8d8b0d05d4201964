// Package config handles loading, defaulting, and validation of the
// sattrack TOML configuration file. Every section maps to a typed struct so
// the rest of the codebase gets strong typing without manual key lookups.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level configuration, mirroring the TOML sections.
type Config struct {
	Logging    LoggingConfig    `toml:"logging"    json:"logging"`
	Server     ServerConfig     `toml:"server"     json:"server"`
	Celestrak  CelestrakConfig  `toml:"celestrak"  json:"celestrak"`
	Spacetrack SpacetrackConfig `toml:"spacetrack" json:"spacetrack"`
	Cache      CacheConfig      `toml:"cache"      json:"cache"`
	Telemetry  TelemetryConfig  `toml:"telemetry"  json:"telemetry"`
}

type LoggingConfig struct {
	Level  string `toml:"level"  json:"level"`
	Format string `toml:"format" json:"format"`
}

type ServerConfig struct {
	Bind string `toml:"bind" json:"bind"`
}

// CelestrakConfig configures the primary, unauthenticated multi-endpoint
// provider. Timeout and retry settings apply to this provider only.
type CelestrakConfig struct {
	BaseURL      string   `toml:"base_url"       json:"base_url"`
	Groups       []string `toml:"groups"         json:"groups"`
	TimeoutMS    int      `toml:"timeout_ms"     json:"timeout_ms"`
	Retries      int      `toml:"retries"        json:"retries"`
	RetryDelayMS int      `toml:"retry_delay_ms" json:"retry_delay_ms"`
}

// SpacetrackConfig configures the authenticated fallback provider.
// Credentials are sent as HTTP Basic auth.
type SpacetrackConfig struct {
	BaseURL      string `toml:"base_url"       json:"base_url"`
	Username     string `toml:"username"       json:"username"`
	Password     string `toml:"password"       json:"-"`
	TimeoutMS    int    `toml:"timeout_ms"     json:"timeout_ms"`
	Retries      int    `toml:"retries"        json:"retries"`
	RetryDelayMS int    `toml:"retry_delay_ms" json:"retry_delay_ms"`
}

// CacheConfig configures the badger-backed cache store and the TTL per
// semantic class of data.
type CacheConfig struct {
	Path                 string `toml:"path"                   json:"path"`
	CollectionTTLSeconds int    `toml:"collection_ttl_seconds" json:"collection_ttl_seconds"`
	RecordTTLSeconds     int    `toml:"record_ttl_seconds"     json:"record_ttl_seconds"`
	MetadataTTLSeconds   int    `toml:"metadata_ttl_seconds"   json:"metadata_ttl_seconds"`
}

type TelemetryConfig struct {
	HeartbeatSeconds int `toml:"heartbeat_seconds" json:"heartbeat_seconds"`
}

// Timeout returns the provider timeout as a duration.
func (c CelestrakConfig) Timeout() time.Duration { return time.Duration(c.TimeoutMS) * time.Millisecond }

// RetryDelay returns the delay between retry attempts as a duration.
func (c CelestrakConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

func (c SpacetrackConfig) Timeout() time.Duration { return time.Duration(c.TimeoutMS) * time.Millisecond }

func (c SpacetrackConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// CollectionTTL returns the expiry for cached satellite collections.
func (c CacheConfig) CollectionTTL() time.Duration {
	return time.Duration(c.CollectionTTLSeconds) * time.Second
}

// RecordTTL returns the expiry for cached single records.
func (c CacheConfig) RecordTTL() time.Duration {
	return time.Duration(c.RecordTTLSeconds) * time.Second
}

// MetadataTTL returns the expiry for long-lived metadata entries.
func (c CacheConfig) MetadataTTL() time.Duration {
	return time.Duration(c.MetadataTTLSeconds) * time.Second
}

// Default returns a Config populated with sane defaults. Values here are
// used whenever the TOML file omits a field.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Bind: "0.0.0.0:8080",
		},
		Celestrak: CelestrakConfig{
			BaseURL:      "https://celestrak.org",
			Groups:       []string{"stations", "weather", "gps-ops", "starlink", "science"},
			TimeoutMS:    30000,
			Retries:      2,
			RetryDelayMS: 1000,
		},
		Spacetrack: SpacetrackConfig{
			BaseURL:      "https://www.space-track.org",
			TimeoutMS:    45000,
			Retries:      1,
			RetryDelayMS: 2000,
		},
		Cache: CacheConfig{
			Path:                 "/var/lib/sattrack/cache",
			CollectionTTLSeconds: 3600,
			RecordTTLSeconds:     1800,
			MetadataTTLSeconds:   86400,
		},
		Telemetry: TelemetryConfig{
			HeartbeatSeconds: 10,
		},
	}
}

// Load reads the TOML file at path, layers it on top of the defaults, and
// validates the result. An error is returned if the file can't be read,
// parsed, or if any constraint is violated.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Server.Bind == "" {
		return errors.New("server.bind must not be empty")
	}
	if cfg.Celestrak.BaseURL == "" {
		return errors.New("celestrak.base_url must not be empty")
	}
	if len(cfg.Celestrak.Groups) == 0 {
		return errors.New("celestrak.groups must list at least one group")
	}
	if cfg.Celestrak.TimeoutMS <= 0 {
		return errors.New("celestrak.timeout_ms must be > 0")
	}
	if cfg.Celestrak.Retries < 0 {
		return errors.New("celestrak.retries must be >= 0")
	}
	if cfg.Spacetrack.BaseURL == "" {
		return errors.New("spacetrack.base_url must not be empty")
	}
	if cfg.Spacetrack.TimeoutMS <= 0 {
		return errors.New("spacetrack.timeout_ms must be > 0")
	}
	if cfg.Spacetrack.Retries < 0 {
		return errors.New("spacetrack.retries must be >= 0")
	}
	if cfg.Cache.Path == "" {
		return errors.New("cache.path must not be empty")
	}
	if cfg.Cache.CollectionTTLSeconds <= 0 {
		return errors.New("cache.collection_ttl_seconds must be > 0")
	}
	if cfg.Cache.RecordTTLSeconds <= 0 {
		return errors.New("cache.record_ttl_seconds must be > 0")
	}
	if cfg.Cache.MetadataTTLSeconds <= 0 {
		return errors.New("cache.metadata_ttl_seconds must be > 0")
	}
	if cfg.Telemetry.HeartbeatSeconds <= 0 {
		return errors.New("telemetry.heartbeat_seconds must be > 0")
	}
	return nil
}
