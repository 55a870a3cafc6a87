// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-blog/internal/content"
	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/session"
	"github.com/olegiv/ocms-blog/internal/validation"
)

type commentRequest struct {
	Content string `json:"content"`
}

// AddComment handles POST /api/posts/{id}/comments.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs := validation.FieldErrors{}
	errs.Check(validation.FieldComment, req.Content)
	if errs.HasErrors() {
		writeValidationError(w, errs)
		return
	}

	user := middleware.GetUser(r)
	c, err := h.posts.AddComment(r.Context(), chi.URLParam(r, "id"), validation.SanitizeText(req.Content), user.Ref())
	if errors.Is(err, content.ErrNotFound) {
		writeNotFound(w, "Post not found")
		return
	}
	if err != nil {
		h.internalError(w, r, "adding comment", err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

// DeleteComment handles DELETE /api/posts/{id}/comments/{commentID}.
// Admins may delete any comment, other users only their own.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	post, ok := h.requirePost(w, r)
	if !ok {
		return
	}
	commentID := chi.URLParam(r, "commentID")
	i := post.CommentIndex(commentID)
	if i < 0 {
		writeNotFound(w, "Comment not found")
		return
	}
	if !session.CanDeleteComment(middleware.GetUser(r), post.Comments[i]) {
		writeError(w, http.StatusForbidden, "forbidden", "You can only delete your own comments")
		return
	}

	deleted, err := h.posts.DeleteComment(r.Context(), post.ID, commentID)
	if errors.Is(err, content.ErrNotFound) {
		writeNotFound(w, "Post not found")
		return
	}
	if err != nil {
		h.internalError(w, r, "deleting comment", err)
		return
	}
	if !deleted {
		writeNotFound(w, "Failed to delete comment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
