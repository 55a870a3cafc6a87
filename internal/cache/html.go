// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/olegiv/ocms-blog/internal/model"
)

const htmlPrefix = "post-html:"

// HTMLCache stores rendered post bodies. Entries are keyed by post id and
// update time, so an edited post never serves stale HTML.
type HTMLCache struct {
	cache  Cache
	logger *slog.Logger
}

// NewHTMLCache wraps c. A nil logger uses slog.Default.
func NewHTMLCache(c Cache, logger *slog.Logger) *HTMLCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLCache{cache: c, logger: logger}
}

func htmlKey(p *model.Post) string {
	return htmlPrefix + p.ID + ":" + strconv.FormatInt(p.UpdatedAt.UnixNano(), 10)
}

// GetOrRender returns the cached HTML for p, calling render on a miss.
// Cache failures fall through to render.
func (h *HTMLCache) GetOrRender(ctx context.Context, p *model.Post, render func(string) (string, error)) (string, error) {
	key := htmlKey(p)
	if data, err := h.cache.Get(ctx, key); err == nil {
		return string(data), nil
	}

	html, err := render(p.Content)
	if err != nil {
		return "", err
	}
	if err := h.cache.Set(ctx, key, []byte(html), 0); err != nil {
		h.logger.Debug("caching rendered post failed", "post_id", p.ID, "error", err)
	}
	return html, nil
}

// Stats reports the underlying cache statistics when available.
func (h *HTMLCache) Stats() (Stats, bool) {
	sp, ok := h.cache.(StatsProvider)
	if !ok {
		return Stats{}, false
	}
	return sp.Stats(), true
}
