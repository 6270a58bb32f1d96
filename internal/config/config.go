// Package config loads the dev server configuration from TOML.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vcrobe/entryform/internal/app/services"
)

// Config is the resolved server configuration.
type Config struct {
	Addr        string
	StaticDir   string
	CorsOrigins []string
	LogLevel    string
	Mock        services.MockOptions
}

// fileConfig mirrors config.toml keys.
type fileConfig struct {
	Addr        string         `toml:"addr"`
	StaticDir   string         `toml:"static_dir"`
	CorsOrigins []string       `toml:"cors_origins"`
	LogLevel    string         `toml:"log_level"`
	Mock        mockFileConfig `toml:"mock"`
}

type mockFileConfig struct {
	Locations   []string `toml:"locations"`
	TakenNames  []string `toml:"taken_names"`
	MinLatency  string   `toml:"min_latency"`
	MaxLatency  string   `toml:"max_latency"`
	FailureRate float64  `toml:"failure_rate"`
	Seed        uint64   `toml:"seed"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:        ":8080",
		StaticDir:   "web",
		CorsOrigins: []string{"http://localhost:8080"},
		LogLevel:    "info",
		Mock:        services.DefaultMockOptions(),
	}
}

// Load reads path and overlays the keys it defines onto Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text and overlays the keys it defines onto Default().
func Parse(data string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("static_dir") {
		cfg.StaticDir = strings.TrimSpace(raw.StaticDir)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("mock", "locations") {
		cfg.Mock.Locations = raw.Mock.Locations
	}
	if meta.IsDefined("mock", "taken_names") {
		cfg.Mock.TakenNames = raw.Mock.TakenNames
	}
	if meta.IsDefined("mock", "min_latency") {
		d, err := time.ParseDuration(raw.Mock.MinLatency)
		if err != nil {
			return Config{}, fmt.Errorf("mock.min_latency: %w", err)
		}
		cfg.Mock.MinLatency = d
	}
	if meta.IsDefined("mock", "max_latency") {
		d, err := time.ParseDuration(raw.Mock.MaxLatency)
		if err != nil {
			return Config{}, fmt.Errorf("mock.max_latency: %w", err)
		}
		cfg.Mock.MaxLatency = d
	}
	if meta.IsDefined("mock", "failure_rate") {
		cfg.Mock.FailureRate = raw.Mock.FailureRate
	}
	if meta.IsDefined("mock", "seed") {
		cfg.Mock.Seed = raw.Mock.Seed
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.Mock.MinLatency < 0 {
		return fmt.Errorf("mock.min_latency must not be negative")
	}
	if c.Mock.MaxLatency < c.Mock.MinLatency {
		return fmt.Errorf("mock.max_latency (%s) below mock.min_latency (%s)", c.Mock.MaxLatency, c.Mock.MinLatency)
	}
	if c.Mock.FailureRate < 0 || c.Mock.FailureRate > 1 {
		return fmt.Errorf("mock.failure_rate %v outside [0,1]", c.Mock.FailureRate)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q not one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}
