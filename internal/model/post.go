// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"slices"
	"time"
)

// Post is a blog post with its comments embedded in display order.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Excerpt    string    `json:"excerpt"`
	Content    string    `json:"content"`
	Author     AuthorRef `json:"author"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Comments   []Comment `json:"comments"`
}

// Clone returns a deep copy of p.
func (p Post) Clone() Post {
	p.Tags = slices.Clone(p.Tags)
	p.Comments = slices.Clone(p.Comments)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	return p
}

// CommentIndex returns the position of the comment with the given id, or -1.
func (p *Post) CommentIndex(commentID string) int {
	return slices.IndexFunc(p.Comments, func(c Comment) bool { return c.ID == commentID })
}

// Comment is a reader comment stored inside its parent post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Author    AuthorRef `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostInput holds the caller-supplied fields of a new post.
// Identity, timestamps, author and comments are assigned by the repository.
type PostInput struct {
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"coverImage"`
}

// PostPatch holds a partial update. Nil fields are left unchanged.
type PostPatch struct {
	Title      *string   `json:"title,omitempty"`
	Excerpt    *string   `json:"excerpt,omitempty"`
	Content    *string   `json:"content,omitempty"`
	Category   *string   `json:"category,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	CoverImage *string   `json:"coverImage,omitempty"`
}

// Apply merges the non-nil fields of the patch over p.
func (pp PostPatch) Apply(p *Post) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Excerpt != nil {
		p.Excerpt = *pp.Excerpt
	}
	if pp.Content != nil {
		p.Content = *pp.Content
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Tags != nil {
		p.Tags = slices.Clone(*pp.Tags)
	}
	if pp.CoverImage != nil {
		p.CoverImage = *pp.CoverImage
	}
}
