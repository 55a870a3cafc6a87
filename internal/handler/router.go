// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/ocms-blog/internal/middleware"
)

// RouterConfig holds the HTTP-level settings of the API.
type RouterConfig struct {
	IsDevelopment  bool
	Secret         []byte
	RequestTimeout time.Duration

	// RateLimit is requests per second per client IP on /api. Zero disables it.
	RateLimit float64
	RateBurst int
}

// Router builds the chi router for the API.
func (h *Handler) Router(cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Middleware())
		}
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(cfg.Secret, cfg.IsDevelopment)))
		r.Use(middleware.LoadUser(h.sessions))

		r.Route("/auth", func(r chi.Router) {
			r.With(h.protection.Middleware()).Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})

		r.Get("/home", h.Home)
		r.Get("/categories", h.Categories)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.With(middleware.RequireAdmin).Post("/", h.CreatePost)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetPost)
				r.Get("/html", h.GetPostHTML)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/", h.ReplacePost)
					r.Patch("/", h.PatchPost)
					r.Delete("/", h.DeletePost)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAuth)
					r.Post("/comments", h.AddComment)
					r.Delete("/comments/{commentID}", h.DeleteComment)
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/stats", h.Stats)
			r.Get("/events", h.Events)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	})

	return r
}
