// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, rate limiting and cross-origin protection.
package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/ocms-blog/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser holds the signed-in *model.User.
const ContextKeyUser ContextKey = "user"

// SessionReader exposes the signed-in user.
type SessionReader interface {
	Current() *model.User
}

// LoadUser puts the signed-in user, if any, into the request context.
func LoadUser(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u := sessions.Current(); u != nil {
				r = r.WithContext(WithUser(r.Context(), u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, u)
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	u, _ := r.Context().Value(ContextKeyUser).(*model.User)
	return u
}

// RequireAuth rejects requests without a signed-in user with 401.
// It must run after LoadUser.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r) == nil {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
// It must run after LoadUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := GetUser(r)
		switch {
		case u == nil:
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
		case !u.IsAdmin():
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Admin access required", nil)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
