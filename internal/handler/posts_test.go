// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/olegiv/ocms-blog/internal/content"
	"github.com/olegiv/ocms-blog/internal/model"
)

func postIDs(posts []model.Post) string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return strings.Join(ids, ",")
}

func TestListPosts(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query string
		want  string
	}{
		{"", "1,2,3"},
		{"?q=react", "1"},
		{"?category=Technology", "1,2"},
		{"?q=web&category=Design", "3"},
		{"?q=nothing-matches", ""},
	}
	for _, tt := range tests {
		rec := env.do(t, http.MethodGet, "/api/posts"+tt.query, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tt.query, rec.Code)
		}
		var posts []model.Post
		decodeData(t, rec, &posts)
		if got := postIDs(posts); got != tt.want {
			t.Errorf("GET /api/posts%s = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestGetPost(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/posts/3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var p model.Post
	decodeData(t, rec, &p)
	if p.Title != "Sustainable Web Design Principles" || len(p.Comments) != 2 {
		t.Errorf("post = %+v", p)
	}

	rec = env.do(t, http.MethodGet, "/api/posts/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d", rec.Code)
	}
}

func TestGetPostHTML(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/posts/1/html", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out postHTML
	decodeData(t, rec, &out)
	if out.ID != "1" || !strings.Contains(out.HTML, "<h1>") {
		t.Errorf("html = %+v", out)
	}

	env.do(t, http.MethodGet, "/api/posts/1/html", nil)
	env.loginAdmin(t)
	var stats struct {
		HTMLCache struct {
			Hits   int64 `json:"hits"`
			Misses int64 `json:"misses"`
		} `json:"htmlCache"`
	}
	decodeData(t, env.do(t, http.MethodGet, "/api/admin/stats", nil), &stats)
	if stats.HTMLCache.Hits != 1 || stats.HTMLCache.Misses != 1 {
		t.Errorf("html cache = %+v, want 1 hit and 1 miss", stats.HTMLCache)
	}
}

func TestHomeAndCategories(t *testing.T) {
	env := newTestEnv(t)

	var home homeResponse
	decodeData(t, env.do(t, http.MethodGet, "/api/home", nil), &home)
	if home.Featured == nil || home.Featured.ID != "1" || postIDs(home.Recent) != "2,3" {
		t.Errorf("home = featured %v recent %q", home.Featured, postIDs(home.Recent))
	}

	var cats []content.Category
	decodeData(t, env.do(t, http.MethodGet, "/api/categories", nil), &cats)
	if len(cats) != 2 || cats[0].Name != "Technology" || cats[0].Count != 2 {
		t.Errorf("categories = %+v", cats)
	}
}

func TestCreatePost_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	if rec := env.do(t, http.MethodPost, "/api/posts", validPostBody()); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}
	env.loginUser(t)
	if rec := env.do(t, http.MethodPost, "/api/posts", validPostBody()); rec.Code != http.StatusForbidden {
		t.Errorf("user status = %d, want 403", rec.Code)
	}
}

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)

	body := validPostBody()
	body["title"] = "Hello <World>"
	rec := env.do(t, http.MethodPost, "/api/posts", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	var p model.Post
	decodeData(t, rec, &p)

	if p.Title != "Hello &lt;World&gt;" {
		t.Errorf("title = %q, want escaped", p.Title)
	}
	if p.Author != (model.AuthorRef{ID: "1", Name: "Admin User"}) {
		t.Errorf("author = %+v", p.Author)
	}
	if strings.Join(p.Tags, "|") != "a|b" {
		t.Errorf("tags = %q", p.Tags)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) || len(p.Comments) != 0 {
		t.Errorf("post = %+v", p)
	}

	var posts []model.Post
	decodeData(t, env.do(t, http.MethodGet, "/api/posts", nil), &posts)
	if len(posts) != 4 || posts[0].ID != p.ID {
		t.Errorf("new post should be first, got %q", postIDs(posts))
	}
}

func TestCreatePost_Validation(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)

	tests := []struct {
		name  string
		edit  func(map[string]any)
		field string
		msg   string
	}{
		{"short title", func(b map[string]any) { b["title"] = "Hey" }, "title", "Title must be at least 5 characters"},
		{"missing excerpt", func(b map[string]any) { b["excerpt"] = "" }, "excerpt", "Excerpt is required"},
		{"missing category", func(b map[string]any) { delete(b, "category") }, "category", "Category is required"},
		{"missing cover", func(b map[string]any) { b["coverImage"] = "" }, "coverImage", "Cover image URL is required"},
		{"duplicate tag", func(b map[string]any) { b["tags"] = []string{"go", "go"} }, "tags", "Tag already exists"},
		{"empty tag", func(b map[string]any) { b["tags"] = []string{" "} }, "tags", "Tag cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validPostBody()
			tt.edit(body)
			rec := env.do(t, http.MethodPost, "/api/posts", body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			if got := decodeError(t, rec).Error.Details[tt.field]; got != tt.msg {
				t.Errorf("%s error = %q, want %q", tt.field, got, tt.msg)
			}
		})
	}
}

func TestPatchPost(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)

	rec := env.do(t, http.MethodPatch, "/api/posts/2", map[string]any{"title": "AI <and> the Web"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	var p model.Post
	decodeData(t, rec, &p)
	if p.Title != "AI &lt;and&gt; the Web" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Category != "Technology" {
		t.Errorf("untouched category changed to %q", p.Category)
	}

	if rec := env.do(t, http.MethodPatch, "/api/posts/2", map[string]any{"title": "AI"}); rec.Code != http.StatusBadRequest {
		t.Errorf("short title status = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodPatch, "/api/posts/missing", map[string]any{"title": "Valid title"}); rec.Code != http.StatusNotFound {
		t.Errorf("missing post status = %d", rec.Code)
	}
}

func TestReplacePost(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)

	body := validPostBody()
	body["category"] = "Design"
	rec := env.do(t, http.MethodPut, "/api/posts/1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	var p model.Post
	decodeData(t, rec, &p)
	if p.ID != "1" || p.Title != "Hello World" || p.Category != "Design" || len(p.Comments) != 1 {
		t.Errorf("post = %+v", p)
	}
}

func TestDeletePost(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin(t)

	if rec := env.do(t, http.MethodDelete, "/api/posts/2", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	rec := env.do(t, http.MethodDelete, "/api/posts/2", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
	if msg := decodeError(t, rec).Error.Message; msg != "Failed to delete post" {
		t.Errorf("message = %q", msg)
	}
}
