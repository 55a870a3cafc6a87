// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/olegiv/ocms-blog/internal/kv"
	"github.com/olegiv/ocms-blog/internal/model"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime"`
	Store   Check  `json:"store"`
}

// Check is the result of a single dependency check.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health. It answers 503 when the store is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Store:   h.checkStore(r.Context()),
	}

	code := http.StatusOK
	if status.Store.Status != "healthy" {
		status.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (h *Handler) checkStore(ctx context.Context) Check {
	p, ok := h.store.(kv.Pinger)
	if !ok {
		return Check{Status: "healthy"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		h.logger.Warn("store health check failed", "category", model.EventCategoryStore, "error", err)
		return Check{Status: "unhealthy", Message: "store unreachable"}
	}
	return Check{Status: "healthy", Latency: time.Since(start).String()}
}
