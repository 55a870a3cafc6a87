// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"math"
	"net/http"

	"github.com/olegiv/ocms-blog/internal/middleware"
	"github.com/olegiv/ocms-blog/internal/model"
	"github.com/olegiv/ocms-blog/internal/validation"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs := validation.FieldErrors{}
	errs.Check(validation.FieldEmail, req.Email)
	if req.Password == "" {
		errs.Add("password", "Password is required")
	}
	if errs.HasErrors() {
		writeValidationError(w, errs)
		return
	}

	if locked, remaining := h.protection.IsAccountLocked(req.Email); locked {
		minutes := int(math.Ceil(remaining.Minutes()))
		writeError(w, http.StatusTooManyRequests, "account_locked",
			fmt.Sprintf("Account temporarily locked. Try again in %d minute(s).", minutes))
		return
	}

	user, ok, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.internalError(w, r, "login failed", err)
		return
	}
	if !ok {
		h.protection.RecordFailedAttempt(req.Email)
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	h.protection.RecordSuccessfulLogin(req.Email)
	writeData(w, http.StatusOK, user)
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs := validation.FieldErrors{}
	errs.Check(validation.FieldName, req.Name)
	errs.Check(validation.FieldEmail, req.Email)
	errs.Check(validation.FieldPassword, req.Password)
	if req.ConfirmPassword != req.Password {
		errs.Add("confirmPassword", "Passwords do not match")
	}
	if errs.HasErrors() {
		writeValidationError(w, errs)
		return
	}

	ok, err := h.sessions.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.internalError(w, r, "registration failed", err)
		return
	}
	if !ok {
		middleware.WriteAPIError(w, http.StatusConflict, "email_exists", "Email already exists",
			map[string]string{"email": "Email is already registered"})
		return
	}

	writeData(w, http.StatusCreated, h.sessions.Current())
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.internalError(w, r, "logout failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	User            *model.User `json:"user"`
	IsAuthenticated bool        `json:"isAuthenticated"`
	IsAdmin         bool        `json:"isAdmin"`
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.GetUser(r)
	writeData(w, http.StatusOK, meResponse{
		User:            u,
		IsAuthenticated: u != nil,
		IsAdmin:         u.IsAdmin(),
	})
}
