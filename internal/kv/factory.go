// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by NewStore.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Config holds configuration for store creation.
type Config struct {
	// Backend is one of memory, sqlite, badger or redis
	Backend string

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string

	// BadgerDir is the data directory for the badger backend
	BadgerDir string

	// RedisURL is the Redis connection URL for the redis backend
	RedisURL string

	// Prefix is the key prefix for the redis backend
	Prefix string
}

// NewStore creates a store for the configured backend.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite, "":
		if err := ensureDir(filepath.Dir(cfg.SQLitePath)); err != nil {
			return nil, err
		}
		return NewSQLiteStore(cfg.SQLitePath)
	case BackendBadger:
		if err := ensureDir(cfg.BadgerDir); err != nil {
			return nil, err
		}
		return NewBadgerStore(cfg.BadgerDir)
	case BackendRedis:
		opts := DefaultRedisOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		return NewRedisStore(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}
