// Package config loads railing settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/railing/config.toml, falling back to
// ~/.config/railing/config.toml. A missing file is not an error: every
// setting has a default, and keys present in the file override only
// themselves.
//
//	[placement]
//	post_width = 5.0
//	target_gap = 18.0
//
//	[cache]
//	enabled = true
//	ttl = "720h"
//	redis_url = ""
//	prefix = ""
//
//	[server]
//	addr = ":8080"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/railing/pkg/errors"
	"github.com/matzehuels/railing/pkg/placement"
)

const (
	appName  = "railing"
	fileName = "config.toml"

	defaultTTL  = "720h"
	defaultAddr = ":8080"
)

// Config is the full set of file-backed settings.
type Config struct {
	Placement placement.Config `toml:"placement"`
	Cache     CacheConfig      `toml:"cache"`
	Server    ServerConfig     `toml:"server"`
}

// CacheConfig controls layout caching.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// TTL is a Go duration string; "0s" keeps entries forever.
	TTL string `toml:"ttl"`
	// RedisURL selects the Redis backend instead of the file cache when set.
	RedisURL string `toml:"redis_url"`
	// Prefix namespaces keys in a shared backend.
	Prefix string `toml:"prefix"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Placement: placement.DefaultConfig(),
		Cache: CacheConfig{
			Enabled: true,
			TTL:     defaultTTL,
		},
		Server: ServerConfig{Addr: defaultAddr},
	}
}

// Dir returns the railing configuration directory.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the path of the configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the configuration at path, or at DefaultPath when path is empty.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate %s", path)
	}
	return cfg, nil
}

// Validate checks the settings that can be checked without a span length.
func (c *Config) Validate() error {
	if err := errors.ValidatePositive("placement.post_width", c.Placement.PostWidth); err != nil {
		return err
	}
	if err := errors.ValidatePositive("placement.target_gap", c.Placement.TargetGap); err != nil {
		return err
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	return nil
}

// TTLDuration parses TTL. An empty TTL means no expiry.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.ttl %q", c.TTL)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	return d, nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves the configuration to path, creating parent directories.
func (c *Config) Write(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
