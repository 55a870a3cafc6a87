// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs named background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is the work done on each tick. The context is cancelled when the
// scheduler stops.
type Job func(ctx context.Context) error

type registeredJob struct {
	name     string
	schedule string
	entryID  cron.EntryID
	run      Job
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name     string
	Schedule string
	LastRun  time.Time
	NextRun  time.Time
}

// Scheduler wraps a cron runner. Jobs may be added before or after Start.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.RWMutex
	jobs map[string]*registeredJob
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]*registeredJob),
	}
}

// ParseSchedule validates a standard five-field cron spec or a descriptor
// such as @hourly.
func ParseSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	return nil
}

// Add registers job under name. Names must be unique.
func (s *Scheduler) Add(name, schedule string, job Job) error {
	if err := ParseSchedule(schedule); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	rj := &registeredJob{name: name, schedule: schedule, run: job}
	id, err := s.cron.AddFunc(schedule, func() { s.runJob(rj) })
	if err != nil {
		return fmt.Errorf("adding job %q: %w", name, err)
	}
	rj.entryID = id
	s.jobs[name] = rj

	s.logger.Info("scheduled job registered", "job", name, "schedule", schedule)
	return nil
}

// Trigger runs the named job immediately, outside its schedule.
func (s *Scheduler) Trigger(name string) error {
	s.mu.RLock()
	rj, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job %q not found", name)
	}
	return s.execute(rj)
}

func (s *Scheduler) runJob(rj *registeredJob) {
	_ = s.execute(rj)
}

func (s *Scheduler) execute(rj *registeredJob) error {
	start := time.Now()
	err := rj.run(s.ctx)
	if err != nil {
		s.logger.Error("scheduled job failed", "job", rj.name, "error", err)
		return err
	}
	s.logger.Info("scheduled job finished", "job", rj.name, "duration", time.Since(start))
	return nil
}

// Jobs returns every registered job sorted by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]JobInfo, 0, len(s.jobs))
	for _, rj := range s.jobs {
		entry := s.cron.Entry(rj.entryID)
		out = append(out, JobInfo{
			Name:     rj.name,
			Schedule: rj.schedule,
			LastRun:  entry.Prev,
			NextRun:  entry.Next,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Start begins running jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
