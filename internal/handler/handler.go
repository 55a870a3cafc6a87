// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler exposes the blog core as a JSON API.
package handler

import (
	"log/slog"
	"time"

	"github.com/olegiv/ocms-blog/internal/cache"
	"github.com/olegiv/ocms-blog/internal/content"
	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/logging"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/render"
	"github.com/olegiv/ocms-blog/internal/session"
)

// Deps are the collaborators of Handler. Store, Posts and Sessions are
// required.
type Deps struct {
	Store      kv.Store
	Posts      *content.Repository
	Sessions   *session.Store
	Events     *logging.EventLog
	Protection *middleware.LoginProtection
	Renderer   *render.Renderer
	HTMLCache  *cache.HTMLCache
	Logger     *slog.Logger
	Version    string
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store      kv.Store
	posts      *content.Repository
	sessions   *session.Store
	events     *logging.EventLog
	protection *middleware.LoginProtection
	renderer   *render.Renderer
	htmlCache  *cache.HTMLCache
	logger     *slog.Logger
	version    string
	startTime  time.Time
}

// New creates a Handler.
func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Renderer == nil {
		d.Renderer = render.New()
	}
	if d.HTMLCache == nil {
		d.HTMLCache = cache.NewHTMLCache(cache.NewMemoryCache(cache.MemoryCacheOptions{
			DefaultTTL: time.Hour,
			MaxSize:    256,
		}), d.Logger)
	}
	if d.Protection == nil {
		d.Protection = middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	}
	if d.Events == nil {
		d.Events = logging.NewEventLog(d.Store, 0)
	}
	return &Handler{
		store:      d.Store,
		posts:      d.Posts,
		sessions:   d.Sessions,
		events:     d.Events,
		protection: d.Protection,
		renderer:   d.Renderer,
		htmlCache:  d.HTMLCache,
		logger:     d.Logger,
		version:    d.Version,
		startTime:  time.Now(),
	}
}
