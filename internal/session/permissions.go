// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import "github.com/olegiv/ocms-blog/internal/model"

// CanManagePosts reports whether u may create, edit or delete posts.
func CanManagePosts(u *model.User) bool {
	return u.IsAdmin()
}

// CanDeleteComment reports whether u may delete c: admins may delete any
// comment, other users only their own.
func CanDeleteComment(u *model.User, c model.Comment) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || u.ID == c.Author.ID
}
