// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that copies warnings and errors
// into the persisted event log shown on the admin dashboard.
package logging

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/ocms-blog/internal/model"
)

// EventLogHandler is a slog.Handler that wraps another handler and also
// appends records at or above its level to an EventLog.
type EventLogHandler struct {
	inner  slog.Handler
	events *EventLog
	level  slog.Level
	attrs  []slog.Attr
	group  string
}

// NewEventLogHandler wraps inner, forwarding WARN and above to events.
func NewEventLogHandler(inner slog.Handler, events *EventLog) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, events, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel wraps inner with a custom forwarding level.
func NewEventLogHandlerWithLevel(inner slog.Handler, events *EventLog, level slog.Level) *EventLogHandler {
	return &EventLogHandler{inner: inner, events: events, level: level}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level && h.events != nil {
		// Failures here are dropped: reporting them through slog would recurse.
		_ = h.events.Append(context.WithoutCancel(ctx), h.toEvent(r))
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.inner = h.inner.WithAttrs(attrs)
	c.attrs = slices.Concat(h.attrs, h.qualify(attrs))
	return &c
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.inner = h.inner.WithGroup(name)
	if h.group != "" {
		name = h.group + "." + name
	}
	c.group = name
	return &c
}

func (h *EventLogHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
	}
	return out
}

func (h *EventLogHandler) toEvent(r slog.Record) model.Event {
	e := model.Event{
		ID:        uuid.NewString(),
		Level:     eventLevel(r.Level),
		Message:   r.Message,
		CreatedAt: r.Time.UTC(),
	}

	attrs := slices.Clone(h.attrs)
	var own []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		own = append(own, a)
		return true
	})
	attrs = append(attrs, h.qualify(own)...)

	for _, a := range attrs {
		if a.Key == "category" || strings.HasSuffix(a.Key, ".category") {
			e.Category = a.Value.String()
			continue
		}
		if e.Metadata == nil {
			e.Metadata = make(map[string]string)
		}
		e.Metadata[a.Key] = a.Value.String()
	}
	if e.Category == "" {
		e.Category = inferCategory(r.Message)
	}
	return e
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// inferCategory guesses a category from the message when none was given.
func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") ||
		strings.Contains(msg, "session") || strings.Contains(msg, "auth"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "post") || strings.Contains(msg, "comment") || strings.Contains(msg, "content"):
		return model.EventCategoryContent
	case strings.Contains(msg, "store") || strings.Contains(msg, "redis") ||
		strings.Contains(msg, "sqlite") || strings.Contains(msg, "badger"):
		return model.EventCategoryStore
	default:
		return model.EventCategorySystem
	}
}
