// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the blog core:
// users, posts, comments and event log entries.
package model

// Role is the authorization level of a user.
type Role string

// User roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an authenticated identity. It never carries a password.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Ref returns the author snapshot for u.
func (u *User) Ref() AuthorRef {
	return AuthorRef{ID: u.ID, Name: u.Name}
}

// AuthorRef is a copy of a user's id and name taken when content is created.
// It is not kept in sync with later changes to the user.
type AuthorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
