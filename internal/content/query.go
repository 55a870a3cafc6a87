// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"strings"

	"github.com/olegiv/ocms-blog/internal/model"
	"github.com/olegiv/ocms-blog/internal/util"
)

// Filter narrows a post listing. Empty fields do not filter.
type Filter struct {
	Term     string
	Category string
}

// Query applies the search term and the category filter, keeping order.
func Query(posts []model.Post, f Filter) []model.Post {
	return FilterByCategory(Search(posts, f.Term), f.Category)
}

// Search keeps posts whose title, excerpt, content or any tag contains term,
// ignoring case.
func Search(posts []model.Post, term string) []model.Post {
	if term == "" {
		return posts
	}
	term = strings.ToLower(term)

	var out []model.Post
	for _, p := range posts {
		if matches(p, term) {
			out = append(out, p)
		}
	}
	return nonNil(out)
}

func matches(p model.Post, term string) bool {
	for _, field := range []string{p.Title, p.Excerpt, p.Content} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// FilterByCategory keeps posts in exactly the given category.
func FilterByCategory(posts []model.Post, category string) []model.Post {
	if category == "" {
		return posts
	}
	var out []model.Post
	for _, p := range posts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return nonNil(out)
}

// Category is a distinct post category with its number of posts.
type Category struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Categories lists distinct categories in the order they first appear.
func Categories(posts []model.Post) []Category {
	index := make(map[string]int)
	out := []Category{}
	for _, p := range posts {
		if i, ok := index[p.Category]; ok {
			out[i].Count++
			continue
		}
		index[p.Category] = len(out)
		out = append(out, Category{Name: p.Category, Slug: util.Slugify(p.Category), Count: 1})
	}
	return out
}

// Featured returns the first post, or nil for an empty collection.
func Featured(posts []model.Post) *model.Post {
	if len(posts) == 0 {
		return nil
	}
	return &posts[0]
}

// Recent returns up to four posts following the featured one.
func Recent(posts []model.Post) []model.Post {
	if len(posts) <= 1 {
		return []model.Post{}
	}
	return posts[1:min(len(posts), 5)]
}

// Latest returns the first n posts.
func Latest(posts []model.Post, n int) []model.Post {
	return posts[:max(0, min(len(posts), n))]
}

// Stats summarizes the collection for the admin dashboard.
type Stats struct {
	TotalPosts    int `json:"totalPosts"`
	TotalComments int `json:"totalComments"`
	Categories    int `json:"categories"`
}

// ComputeStats counts posts, comments and distinct categories.
func ComputeStats(posts []model.Post) Stats {
	s := Stats{TotalPosts: len(posts), Categories: len(Categories(posts))}
	for _, p := range posts {
		s.TotalComments += len(p.Comments)
	}
	return s
}

func nonNil(posts []model.Post) []model.Post {
	if posts == nil {
		return []model.Post{}
	}
	return posts
}
