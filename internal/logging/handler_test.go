// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/model"
)

// discardHandler is a slog.Handler that accepts and drops everything.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func newTestLogger(t *testing.T) (*slog.Logger, *EventLog) {
	t.Helper()
	events := NewEventLog(kv.NewMemoryStore(), 0)
	return slog.New(NewEventLogHandler(discardHandler{}, events)), events
}

func listEvents(t *testing.T, events *EventLog) []model.Event {
	t.Helper()
	list, err := events.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return list
}

func TestEventLogHandler_LevelThreshold(t *testing.T) {
	logger, events := newTestLogger(t)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	list := listEvents(t, events)
	if len(list) != 2 {
		t.Fatalf("expected 2 events, got %d", len(list))
	}
	if list[0].Message != "error message" || list[0].Level != model.EventLevelError {
		t.Errorf("newest event = %+v", list[0])
	}
	if list[1].Message != "warn message" || list[1].Level != model.EventLevelWarning {
		t.Errorf("oldest event = %+v", list[1])
	}
	if list[0].ID == "" || list[0].ID == list[1].ID {
		t.Error("events need distinct ids")
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	events := NewEventLog(kv.NewMemoryStore(), 0)
	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, events, slog.LevelInfo))

	logger.Info("info message")

	list := listEvents(t, events)
	if len(list) != 1 || list[0].Level != model.EventLevelInfo {
		t.Fatalf("events = %+v", list)
	}
}

func TestEventLogHandler_Category(t *testing.T) {
	tests := []struct {
		msg  string
		args []any
		want string
	}{
		{"login failed", nil, model.EventCategoryAuth},
		{"persisted session is malformed", nil, model.EventCategoryAuth},
		{"post vanished", nil, model.EventCategoryContent},
		{"redis unreachable", nil, model.EventCategoryStore},
		{"something odd", nil, model.EventCategorySystem},
		{"something odd", []any{"category", model.EventCategoryContent}, model.EventCategoryContent},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			logger, events := newTestLogger(t)
			logger.Warn(tt.msg, tt.args...)

			list := listEvents(t, events)
			if len(list) != 1 {
				t.Fatalf("expected 1 event, got %d", len(list))
			}
			if list[0].Category != tt.want {
				t.Errorf("category = %q, want %q", list[0].Category, tt.want)
			}
		})
	}
}

func TestEventLogHandler_Metadata(t *testing.T) {
	logger, events := newTestLogger(t)

	logger.With("request_id", "abc").WithGroup("db").Warn("slow query",
		"category", model.EventCategoryStore,
		"ms", 1200,
	)

	list := listEvents(t, events)
	if len(list) != 1 {
		t.Fatalf("expected 1 event, got %d", len(list))
	}
	md := list[0].Metadata
	if md["request_id"] != "abc" {
		t.Errorf("request_id = %q", md["request_id"])
	}
	if md["db.ms"] != "1200" {
		t.Errorf("db.ms = %q, metadata %v", md["db.ms"], md)
	}
	if _, ok := md["db.category"]; ok {
		t.Error("category should not be duplicated into metadata")
	}
	if list[0].Category != model.EventCategoryStore {
		t.Errorf("category = %q", list[0].Category)
	}
}

func TestEventLogHandler_WithAttrsCategory(t *testing.T) {
	logger, events := newTestLogger(t)

	logger.With("category", model.EventCategoryAuth).Error("boom")

	list := listEvents(t, events)
	if len(list) != 1 || list[0].Category != model.EventCategoryAuth {
		t.Fatalf("events = %+v", list)
	}
}

func TestEventLog_Bounded(t *testing.T) {
	events := NewEventLog(kv.NewMemoryStore(), 3)
	ctx := context.Background()

	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		if err := events.Append(ctx, model.Event{ID: msg, Message: msg}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	list := listEvents(t, events)
	if len(list) != 3 {
		t.Fatalf("expected 3 events, got %d", len(list))
	}
	for i, want := range []string{"e", "d", "c"} {
		if list[i].Message != want {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Message, want)
		}
	}

	if err := events.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if list := listEvents(t, events); len(list) != 0 {
		t.Errorf("after Clear got %d events", len(list))
	}
}

func TestEventLog_UnreadableIsEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	if err := store.Set(ctx, kv.KeyEventLog, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	events := NewEventLog(store, 0)

	if list := listEvents(t, events); len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
	if err := events.Append(ctx, model.Event{ID: "1", Message: "fresh"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if list := listEvents(t, events); len(list) != 1 {
		t.Errorf("expected 1 event after append, got %d", len(list))
	}
}
