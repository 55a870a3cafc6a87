// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package demo

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/olegiv/ocms-blog/internal/content"
	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/model"
	"github.com/olegiv/ocms-blog/internal/session"
)

type env struct {
	store    *kv.MemoryStore
	posts    *content.Repository
	sessions *session.Store
	resetter *Resetter
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	store := kv.NewMemoryStore()
	posts := content.New(store, content.Options{Logger: logger})
	sessions, err := session.Open(ctx, store, session.Options{Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	return &env{
		store:    store,
		posts:    posts,
		sessions: sessions,
		resetter: NewResetter(store, posts, sessions, logger),
	}
}

// dirty deletes a post and signs in so a reset has something to undo.
func (e *env) dirty(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if ok, err := e.posts.DeletePost(ctx, "1"); err != nil || !ok {
		t.Fatalf("DeletePost: %v %v", ok, err)
	}
	if _, ok, err := e.sessions.Login(ctx, "admin@example.com", "admin123"); err != nil || !ok {
		t.Fatalf("Login: %v %v", ok, err)
	}
}

func (e *env) assertSeeded(t *testing.T) {
	t.Helper()
	posts, err := e.posts.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 3 || posts[0].ID != "1" {
		t.Errorf("posts not re-seeded: %d posts", len(posts))
	}
	if e.sessions.IsAuthenticated() {
		t.Error("session should be cleared")
	}
}

func (e *env) writeTimestamp(t *testing.T, ts time.Time) {
	t.Helper()
	err := e.store.Set(context.Background(), kv.KeyDemoReset, []byte(strconv.FormatInt(ts.Unix(), 10)))
	if err != nil {
		t.Fatal(err)
	}
}

func TestReset(t *testing.T) {
	e := newEnv(t)
	e.dirty(t)
	now := time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)
	e.resetter.now = func() time.Time { return now }

	if err := e.resetter.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	e.assertSeeded(t)

	last, err := e.resetter.LastReset(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !last.Equal(now) {
		t.Errorf("LastReset() = %v, want %v", last, now)
	}

	data, err := e.store.Get(context.Background(), kv.KeySessionUser)
	if !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("persisted session = %q, err %v", data, err)
	}
}

func TestResetIfNeeded_MissingTimestamp(t *testing.T) {
	e := newEnv(t)
	e.dirty(t)

	ran, err := e.resetter.ResetIfNeeded(context.Background())
	if err != nil {
		t.Fatalf("ResetIfNeeded() error = %v", err)
	}
	if !ran {
		t.Error("expected a reset without a timestamp")
	}
	e.assertSeeded(t)
}

func TestResetIfNeeded_StaleTimestamp(t *testing.T) {
	e := newEnv(t)
	e.writeTimestamp(t, time.Now().Add(-25*time.Hour))
	e.dirty(t)

	ran, err := e.resetter.ResetIfNeeded(context.Background())
	if err != nil {
		t.Fatalf("ResetIfNeeded() error = %v", err)
	}
	if !ran {
		t.Error("expected a reset after a stale timestamp")
	}
	e.assertSeeded(t)
}

func TestResetIfNeeded_FreshTimestamp(t *testing.T) {
	e := newEnv(t)
	e.writeTimestamp(t, time.Now().Add(-1*time.Hour))
	e.dirty(t)

	ran, err := e.resetter.ResetIfNeeded(context.Background())
	if err != nil {
		t.Fatalf("ResetIfNeeded() error = %v", err)
	}
	if ran {
		t.Error("reset should not run within the interval")
	}

	posts, _ := e.posts.Load(context.Background())
	if len(posts) != 2 {
		t.Errorf("posts = %d, want untouched 2", len(posts))
	}
	if !e.sessions.IsAuthenticated() {
		t.Error("session should be untouched")
	}
}

func TestResetIfNeeded_CorruptTimestamp(t *testing.T) {
	e := newEnv(t)
	if err := e.store.Set(context.Background(), kv.KeyDemoReset, []byte("garbage")); err != nil {
		t.Fatal(err)
	}

	ran, err := e.resetter.ResetIfNeeded(context.Background())
	if err != nil {
		t.Fatalf("ResetIfNeeded() error = %v", err)
	}
	if !ran {
		t.Error("an unreadable timestamp should trigger a reset")
	}
}

type failingPosts struct{ err error }

func (f failingPosts) Reset(context.Context) error { return f.err }

type recordingSessions struct{ calls int }

func (r *recordingSessions) Logout(context.Context) error {
	r.calls++
	return nil
}

func TestReset_ContentError(t *testing.T) {
	store := kv.NewMemoryStore()
	boom := errors.New("boom")
	sessions := &recordingSessions{}
	r := NewResetter(store, failingPosts{err: boom}, sessions, slog.New(slog.DiscardHandler))

	err := r.Reset(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Reset() error = %v, want %v", err, boom)
	}
	if sessions.calls != 0 {
		t.Error("session should not be cleared when the content reset fails")
	}
	if _, err := store.Get(context.Background(), kv.KeyDemoReset); !errors.Is(err, kv.ErrNotFound) {
		t.Error("timestamp should not be written on failure")
	}
}

func TestReset_LogsSystemEvent(t *testing.T) {
	e := newEnv(t)
	var got []slog.Record
	e.resetter.logger = slog.New(recordHandler{records: &got})

	if err := e.resetter.Reset(context.Background()); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, rec := range got {
		rec.Attrs(func(a slog.Attr) bool {
			if a.Key == "category" && a.Value.String() == model.EventCategorySystem {
				found = true
			}
			return true
		})
	}
	if !found {
		t.Error("reset should log a system event")
	}
}

type recordHandler struct{ records *[]slog.Record }

func (h recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h recordHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}
func (h recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordHandler) WithGroup(string) slog.Handler      { return h }
