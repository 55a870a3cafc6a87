// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package kv provides the persisted key-value store that holds the blog's
// state: the content blob, the current session and the event log.
package kv

import (
	"context"
)

// Store defines the interface for key-value store implementations.
// All implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Error represents an error type for store operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key has no value.
	ErrNotFound Error = "key not found"

	// ErrClosed indicates the store has been closed.
	ErrClosed Error = "store closed"
)

// Well-known keys.
const (
	KeySessionUser  = "session-user"
	KeyContentStore = "content-store"
	KeyAccounts     = "accounts"
	KeyEventLog     = "event-log"
	KeyDemoReset    = "demo-last-reset"
)
