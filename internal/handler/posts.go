// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-blog/internal/content"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/model"
	"github.com/olegiv/ocms-blog/internal/validation"
)

// ListPosts handles GET /api/posts with optional q and category filters.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetPosts(r.Context())
	if err != nil {
		h.internalError(w, r, "listing posts", err)
		return
	}
	q := r.URL.Query()
	writeData(w, http.StatusOK, content.Query(posts, content.Filter{
		Term:     strings.TrimSpace(q.Get("q")),
		Category: q.Get("category"),
	}))
}

// GetPost handles GET /api/posts/{id}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requirePost(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, post)
}

type postHTML struct {
	ID   string `json:"id"`
	HTML string `json:"html"`
}

// GetPostHTML handles GET /api/posts/{id}/html.
func (h *Handler) GetPostHTML(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requirePost(w, r)
	if !ok {
		return
	}
	html, err := h.htmlCache.GetOrRender(r.Context(), post, h.renderer.Markdown)
	if err != nil {
		h.internalError(w, r, "rendering post", err)
		return
	}
	writeData(w, http.StatusOK, postHTML{ID: post.ID, HTML: html})
}

// requirePost loads the post named by the {id} URL parameter. It writes a
// 404 or 500 and returns false when the post cannot be returned.
func (h *Handler) requirePost(w http.ResponseWriter, r *http.Request) (*model.Post, bool) {
	post, err := h.posts.GetPost(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, content.ErrNotFound) {
		writeNotFound(w, "Post not found")
		return nil, false
	}
	if err != nil {
		h.internalError(w, r, "loading post", err)
		return nil, false
	}
	return post, true
}

// Categories handles GET /api/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetPosts(r.Context())
	if err != nil {
		h.internalError(w, r, "listing categories", err)
		return
	}
	writeData(w, http.StatusOK, content.Categories(posts))
}

type homeResponse struct {
	Featured *model.Post  `json:"featured"`
	Recent   []model.Post `json:"recent"`
}

// Home handles GET /api/home.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetPosts(r.Context())
	if err != nil {
		h.internalError(w, r, "loading home", err)
		return
	}
	writeData(w, http.StatusOK, homeResponse{
		Featured: content.Featured(posts),
		Recent:   content.Recent(posts),
	})
}

// validateForm runs the editor checks including the tag rules.
func validateForm(form validation.PostForm) validation.FieldErrors {
	errs := validation.ValidatePostForm(form)
	seen := make([]string, 0, len(form.Tags))
	for _, tag := range form.Tags {
		if msg := validation.ValidateTag(tag, seen); msg != "" {
			errs.Add("tags", msg)
			break
		}
		seen = append(seen, strings.TrimSpace(tag))
	}
	return errs
}

func trimTags(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.TrimSpace(t)
	}
	return out
}

// CreatePost handles POST /api/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var form validation.PostForm
	if !decodeJSON(w, r, &form) {
		return
	}
	if errs := validateForm(form); errs.HasErrors() {
		writeValidationError(w, errs)
		return
	}
	form.Tags = trimTags(form.Tags)

	user := middleware.GetUser(r)
	post, err := h.posts.CreatePost(r.Context(), form.Input(), user.Ref())
	if err != nil {
		h.internalError(w, r, "creating post", err)
		return
	}
	h.logger.Info("post created", "post_id", post.ID, "user_id", user.ID)
	writeData(w, http.StatusCreated, post)
}

// ReplacePost handles PUT /api/posts/{id}: every editable field is replaced.
func (h *Handler) ReplacePost(w http.ResponseWriter, r *http.Request) {
	var form validation.PostForm
	if !decodeJSON(w, r, &form) {
		return
	}
	if errs := validateForm(form); errs.HasErrors() {
		writeValidationError(w, errs)
		return
	}
	form.Tags = trimTags(form.Tags)

	in := form.Input()
	h.applyPatch(w, r, model.PostPatch{
		Title:      &in.Title,
		Excerpt:    &in.Excerpt,
		Content:    &in.Content,
		Category:   &in.Category,
		Tags:       &in.Tags,
		CoverImage: &in.CoverImage,
	})
}

// PatchPost handles PATCH /api/posts/{id}: only the given fields change.
func (h *Handler) PatchPost(w http.ResponseWriter, r *http.Request) {
	var patch model.PostPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	errs := validation.ValidatePatch(patch)
	if patch.Tags != nil {
		seen := []string{}
		for _, tag := range *patch.Tags {
			if msg := validation.ValidateTag(tag, seen); msg != "" {
				errs.Add("tags", msg)
				break
			}
			seen = append(seen, strings.TrimSpace(tag))
		}
		*patch.Tags = seen
	}
	if errs.HasErrors() {
		writeValidationError(w, errs)
		return
	}
	validation.SanitizePatch(&patch)
	h.applyPatch(w, r, patch)
}

func (h *Handler) applyPatch(w http.ResponseWriter, r *http.Request, patch model.PostPatch) {
	postID := chi.URLParam(r, "id")
	post, err := h.posts.UpdatePost(r.Context(), postID, patch)
	if errors.Is(err, content.ErrNotFound) {
		writeNotFound(w, "Post not found")
		return
	}
	if err != nil {
		h.internalError(w, r, "updating post", err)
		return
	}
	writeData(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	ok, err := h.posts.DeletePost(r.Context(), postID)
	if err != nil {
		h.internalError(w, r, "deleting post", err)
		return
	}
	if !ok {
		writeNotFound(w, "Failed to delete post")
		return
	}
	h.logger.Info("post deleted", "post_id", postID, "user_id", middleware.GetUser(r).ID)
	w.WriteHeader(http.StatusNoContent)
}
