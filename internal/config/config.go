// Package config loads server configuration from a YAML file and environment
// variables. Environment variables override YAML values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
type Config struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	Store     StoreConfig   `yaml:"store"`
	Weather   WeatherConfig `yaml:"weather"`
	SentryDSN string        `yaml:"sentry_dsn"`
}

// StoreConfig selects and configures the trip store backend.
type StoreConfig struct {
	// Backend is "memory", "sqlite" or "postgres".
	Backend string `yaml:"backend"`
	// DSN is the SQLite file path or PostgreSQL connection string.
	DSN string `yaml:"dsn"`
}

// WeatherConfig configures the weather proxy.
type WeatherConfig struct {
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	RedisAddr string        `yaml:"redis_addr"`
}

// Load reads configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:            ":8080",
		AllowedOrigins:  []string{"*"},
		RateLimitRPS:    10,
		RateLimitBurst:  30,
		ShutdownTimeout: 10 * time.Second,
		Store:           StoreConfig{Backend: "memory"},
		Weather: WeatherConfig{
			BaseURL:  "https://api.weatherapi.com/v1",
			CacheTTL: 10 * time.Minute,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := os.Getenv("TRIPFLOW_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TRIPFLOW_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("TRIPFLOW_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("TRIPFLOW_RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitBurst = n
		}
	}
	if v := os.Getenv("TRIPFLOW_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("TRIPFLOW_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("TRIPFLOW_WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("TRIPFLOW_WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("TRIPFLOW_WEATHER_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Weather.CacheTTL = d
		}
	}
	if v := os.Getenv("TRIPFLOW_REDIS_ADDR"); v != "" {
		cfg.Weather.RedisAddr = v
	}
	if v := os.Getenv("TRIPFLOW_SENTRY_DSN"); v != "" {
		cfg.SentryDSN = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "memory":
	case "sqlite", "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store backend %q requires a dsn (set TRIPFLOW_STORE_DSN or yaml)", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	return nil
}
