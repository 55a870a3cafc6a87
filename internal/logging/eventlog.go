// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/model"
)

// DefaultEventLimit is the number of events kept when no limit is given.
const DefaultEventLimit = 200

// EventLog is a bounded list of events persisted under kv.KeyEventLog,
// newest first.
type EventLog struct {
	store kv.Store
	limit int
	mu    sync.Mutex
}

// NewEventLog creates an event log keeping at most limit entries.
func NewEventLog(store kv.Store, limit int) *EventLog {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	return &EventLog{store: store, limit: limit}
}

// Append adds e at the front, dropping the oldest entries past the limit.
func (l *EventLog) Append(ctx context.Context, e model.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	events, err := l.load(ctx)
	if err != nil {
		return err
	}
	events = append([]model.Event{e}, events...)
	if len(events) > l.limit {
		events = events[:l.limit]
	}

	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encoding event log: %w", err)
	}
	if err := l.store.Set(ctx, kv.KeyEventLog, data); err != nil {
		return fmt.Errorf("writing event log: %w", err)
	}
	return nil
}

// List returns the stored events, newest first.
func (l *EventLog) List(ctx context.Context) ([]model.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// Clear removes all events.
func (l *EventLog) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Delete(ctx, kv.KeyEventLog)
}

// load treats a missing or unreadable log as empty; the log is diagnostic
// data and must never block the write that follows.
func (l *EventLog) load(ctx context.Context) ([]model.Event, error) {
	data, err := l.store.Get(ctx, kv.KeyEventLog)
	if errors.Is(err, kv.ErrNotFound) {
		return []model.Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading event log: %w", err)
	}
	var events []model.Event
	if json.Unmarshal(data, &events) != nil || events == nil {
		return []model.Event{}, nil
	}
	return events, nil
}
