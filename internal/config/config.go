// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from BLOG_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Store backends accepted by BLOG_STORE.
var storeBackends = []string{"memory", "sqlite", "badger", "redis"}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"BLOG_ENV" envDefault:"development"`
	ServerHost string `env:"BLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"BLOG_SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"BLOG_LOG_LEVEL" envDefault:"info"`

	// Secret keys cross-origin protection. At least 32 bytes.
	Secret string `env:"BLOG_SECRET,required"`

	// Storage
	Store     string `env:"BLOG_STORE" envDefault:"sqlite"`
	DBPath    string `env:"BLOG_DB_PATH" envDefault:"./data/blog.db"`
	BadgerDir string `env:"BLOG_BADGER_DIR" envDefault:"./data/badger"`
	RedisURL  string `env:"BLOG_REDIS_URL"`
	KeyPrefix string `env:"BLOG_KEY_PREFIX" envDefault:"blog:"`

	// Behaviour
	LatencyScale          float64 `env:"BLOG_LATENCY_SCALE" envDefault:"1"`
	RememberRegistrations bool    `env:"BLOG_REMEMBER_REGISTRATIONS" envDefault:"false"`
	DemoResetSchedule     string  `env:"BLOG_DEMO_RESET_SCHEDULE"` // cron spec, empty disables

	RequestTimeout time.Duration `env:"BLOG_REQUEST_TIMEOUT" envDefault:"30s"`

	// Per-IP API rate limit in requests per second; 0 disables it
	APIRateLimit float64 `env:"BLOG_API_RATE_LIMIT" envDefault:"0"`
	APIRateBurst int     `env:"BLOG_API_RATE_BURST" envDefault:"20"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// DemoResetEnabled reports whether the periodic demo reset is configured.
func (c Config) DemoResetEnabled() bool {
	return c.DemoResetSchedule != ""
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSecretLength is the minimum length of BLOG_SECRET in bytes.
const MinSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.Secret) {
		slog.Warn("BLOG_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Secret) < MinSecretLength {
		return fmt.Errorf("BLOG_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSecretLength, len(c.Secret))
	}
	if slices.Contains(knownWeakSecrets, c.Secret) {
		return fmt.Errorf("BLOG_SECRET is a known default value and must not be used")
	}

	c.Store = strings.ToLower(c.Store)
	if !slices.Contains(storeBackends, c.Store) {
		return fmt.Errorf("BLOG_STORE must be one of %s, got %q", strings.Join(storeBackends, ", "), c.Store)
	}
	if c.Store == "redis" && c.RedisURL == "" {
		return fmt.Errorf("BLOG_REDIS_URL is required when BLOG_STORE=redis")
	}
	if c.LatencyScale < 0 {
		return fmt.Errorf("BLOG_LATENCY_SCALE must not be negative, got %g", c.LatencyScale)
	}
	if c.APIRateLimit < 0 {
		return fmt.Errorf("BLOG_API_RATE_LIMIT must not be negative, got %g", c.APIRateLimit)
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("BLOG_SERVER_PORT out of range: %d", c.ServerPort)
	}
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	classes := []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	}
	n := 0
	for _, class := range classes {
		if strings.ContainsAny(s, class) {
			n++
		}
	}
	return n >= 3
}
