// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestNew(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	s := New(logger)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		spec    string
		wantErr bool
	}{
		{"* * * * *", false},
		{"0 3 * * *", false},
		{"@hourly", false},
		{"@every 10m", false},
		{"", true},
		{"not a schedule", true},
		{"* * * *", true},
	}
	for _, tt := range tests {
		err := ParseSchedule(tt.spec)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSchedule(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
		}
	}
}

func TestScheduler_AddAndTrigger(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler))

	runs := 0
	err := s.Add("reset", "@daily", func(ctx context.Context) error {
		runs++
		return nil
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := s.Add("reset", "@hourly", func(context.Context) error { return nil }); err == nil {
		t.Error("duplicate Add() should fail")
	}
	if err := s.Add("bad", "nope", func(context.Context) error { return nil }); err == nil {
		t.Error("Add() with invalid schedule should fail")
	}

	if err := s.Trigger("reset"); err != nil {
		t.Fatalf("Trigger() error = %v", err)
	}
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if err := s.Trigger("missing"); err == nil {
		t.Error("Trigger() of unknown job should fail")
	}
}

func TestScheduler_TriggerReturnsJobError(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler))
	boom := errors.New("boom")
	if err := s.Add("fail", "@daily", func(context.Context) error { return boom }); err != nil {
		t.Fatal(err)
	}
	if err := s.Trigger("fail"); !errors.Is(err, boom) {
		t.Errorf("Trigger() error = %v, want %v", err, boom)
	}
}

func TestScheduler_Jobs(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler))
	noop := func(context.Context) error { return nil }
	_ = s.Add("b", "@hourly", noop)
	_ = s.Add("a", "@daily", noop)

	s.Start()
	defer s.Stop()

	jobs := s.Jobs()
	if len(jobs) != 2 || jobs[0].Name != "a" || jobs[1].Name != "b" {
		t.Fatalf("Jobs() = %+v", jobs)
	}
	if jobs[0].Schedule != "@daily" {
		t.Errorf("schedule = %q", jobs[0].Schedule)
	}
	if jobs[0].NextRun.IsZero() {
		t.Error("NextRun should be set once the scheduler is running")
	}
}

func TestScheduler_StopCancelsContext(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler))
	var jobCtx context.Context
	_ = s.Add("ctx", "@daily", func(ctx context.Context) error {
		jobCtx = ctx
		return nil
	})
	s.Start()
	_ = s.Trigger("ctx")
	s.Stop()

	if jobCtx.Err() == nil {
		t.Error("job context should be cancelled after Stop")
	}
}
