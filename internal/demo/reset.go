// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package demo restores the blog to its seeded state, either on a cron
// schedule or at startup when the last reset is overdue.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/model"
)

// ResetInterval is how often the demo data should be refreshed.
const ResetInterval = 24 * time.Hour

// JobName is the scheduler name of the periodic reset.
const JobName = "demo-reset"

// ContentResetter replaces the stored posts with the seed collection.
type ContentResetter interface {
	Reset(ctx context.Context) error
}

// SessionClearer signs out the current user.
type SessionClearer interface {
	Logout(ctx context.Context) error
}

// Resetter performs demo resets and records when the last one happened
// under kv.KeyDemoReset.
type Resetter struct {
	store    kv.Store
	posts    ContentResetter
	sessions SessionClearer
	logger   *slog.Logger
	now      func() time.Time
}

// NewResetter creates a Resetter.
func NewResetter(store kv.Store, posts ContentResetter, sessions SessionClearer, logger *slog.Logger) *Resetter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resetter{
		store:    store,
		posts:    posts,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// LastReset returns the time of the last reset, or the zero time when none
// has been recorded or the record is unreadable.
func (r *Resetter) LastReset(ctx context.Context) (time.Time, error) {
	data, err := r.store.Get(ctx, kv.KeyDemoReset)
	if errors.Is(err, kv.ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading reset timestamp: %w", err)
	}
	unixSec, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return time.Time{}, nil
	}
	return time.Unix(unixSec, 0), nil
}

// ResetIfNeeded performs a reset when the last one is older than
// ResetInterval. This covers a server that was stopped through a scheduled
// reset. It reports whether a reset ran.
func (r *Resetter) ResetIfNeeded(ctx context.Context) (bool, error) {
	last, err := r.LastReset(ctx)
	if err != nil {
		return false, err
	}

	if !last.IsZero() && r.now().Sub(last) < ResetInterval {
		r.logger.Info("demo reset not needed",
			"last_reset", last.UTC().Format(time.RFC3339),
			"next_reset", last.Add(ResetInterval).UTC().Format(time.RFC3339),
		)
		return false, nil
	}

	r.logger.Info("demo reset overdue, restoring seed content")
	return true, r.Reset(ctx)
}

// Reset re-seeds the posts, signs out the current user and writes a fresh
// reset timestamp. It matches scheduler.Job.
func (r *Resetter) Reset(ctx context.Context) error {
	if err := r.posts.Reset(ctx); err != nil {
		return fmt.Errorf("resetting content: %w", err)
	}
	if err := r.sessions.Logout(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	ts := strconv.FormatInt(r.now().UTC().Unix(), 10)
	if err := r.store.Set(ctx, kv.KeyDemoReset, []byte(ts)); err != nil {
		return fmt.Errorf("writing reset timestamp: %w", err)
	}

	r.logger.Warn("demo data reset", "category", model.EventCategorySystem)
	return nil
}
