// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/ocms-blog/internal/cache"
	"github.com/olegiv/ocms-blog/internal/content"
	"github.com/olegiv/ocms-blog/internal/model"
)

// dashboardLatest is the number of posts listed on the dashboard.
const dashboardLatest = 5

type dashboardResponse struct {
	content.Stats
	Latest    []model.Post `json:"latest"`
	HTMLCache *cache.Stats `json:"htmlCache,omitempty"`
}

// Stats handles GET /api/admin/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetPosts(r.Context())
	if err != nil {
		h.internalError(w, r, "loading dashboard", err)
		return
	}
	resp := dashboardResponse{
		Stats:  content.ComputeStats(posts),
		Latest: content.Latest(posts, dashboardLatest),
	}
	if stats, ok := h.htmlCache.Stats(); ok {
		resp.HTMLCache = &stats
	}
	writeData(w, http.StatusOK, resp)
}

// Events handles GET /api/admin/events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.internalError(w, r, "listing events", err)
		return
	}
	writeData(w, http.StatusOK, events)
}
