// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/ocms-blog/internal/config"
	"github.com/olegiv/ocms-blog/internal/content"
	"github.com/olegiv/ocms-blog/internal/demo"
	"github.com/olegiv/ocms-blog/internal/handler"
	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/logging"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/render"
	"github.com/olegiv/ocms-blog/internal/scheduler"
	"github.com/olegiv/ocms-blog/internal/session"
	"github.com/olegiv/ocms-blog/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "blogd - blog API server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_SECRET               Cross-origin protection key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_STORE                memory|sqlite|badger|redis (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_DB_PATH              SQLite database path (default: ./data/blog.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_BADGER_DIR           Badger data directory (default: ./data/badger)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_REDIS_URL            Redis URL for the redis store\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_LATENCY_SCALE        Multiplier for simulated latency (default: 1)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BLOG_DEMO_RESET_SCHEDULE  Cron spec for the demo reset (default: off)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newHandler(cfg *config.Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsDevelopment() {
		return slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.NewJSONHandler(os.Stdout, opts)
}

func run(versionInfo version.Info) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(newHandler(cfg))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("opening store", "backend", cfg.Store)
	store, err := kv.NewStore(ctx, kv.Config{
		Backend:    cfg.Store,
		SQLitePath: cfg.DBPath,
		BadgerDir:  cfg.BadgerDir,
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.KeyPrefix,
	})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()

	// Upgrade logger to also write WARN and ERROR logs to the event log
	events := logging.NewEventLog(store, logging.DefaultEventLimit)
	logger = slog.New(logging.NewEventLogHandler(newHandler(cfg), events))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	posts := content.New(store, content.Options{
		Latency: content.DefaultLatency().Scale(cfg.LatencyScale),
		Logger:  logger,
	})
	if _, err := posts.Load(ctx); err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	sessions, err := session.Open(ctx, store, session.Options{
		Latency:               time.Duration(float64(session.DefaultLatency) * cfg.LatencyScale),
		RememberRegistrations: cfg.RememberRegistrations,
		Logger:                logger,
	})
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}

	if cfg.DemoResetEnabled() {
		resetter := demo.NewResetter(store, posts, sessions, logger)
		if _, err := resetter.ResetIfNeeded(ctx); err != nil {
			return fmt.Errorf("demo reset: %w", err)
		}

		sched := scheduler.New(logger)
		if err := sched.Add(demo.JobName, cfg.DemoResetSchedule, resetter.Reset); err != nil {
			return fmt.Errorf("scheduling demo reset: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	protection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	go protection.Run(ctx, 5*time.Minute)

	h := handler.New(handler.Deps{
		Store:      store,
		Posts:      posts,
		Sessions:   sessions,
		Events:     events,
		Protection: protection,
		Renderer:   render.New(),
		Logger:     logger,
		Version:    versionInfo.Version,
	})

	srv := &http.Server{
		Addr: cfg.ServerAddr(),
		Handler: h.Router(handler.RouterConfig{
			IsDevelopment:  cfg.IsDevelopment(),
			Secret:         []byte(cfg.Secret),
			RequestTimeout: cfg.RequestTimeout,
			RateLimit:      cfg.APIRateLimit,
			RateBurst:      cfg.APIRateBurst,
		}),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second, // covers the simulated latency
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
