// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation

import (
	"testing"

	"github.com/olegiv/ocms-blog/internal/model"
)

func validForm() PostForm {
	return PostForm{
		Title:      "A proper title",
		Excerpt:    "Short summary",
		Content:    "# Heading\n\nBody",
		Category:   "Technology",
		CoverImage: "https://example.com/cover.jpg",
		Tags:       []string{"go"},
	}
}

func TestValidatePostForm_Valid(t *testing.T) {
	if errs := ValidatePostForm(validForm()); errs.HasErrors() {
		t.Errorf("ValidatePostForm() = %v, want no errors", errs)
	}
}

func TestValidatePostForm_Missing(t *testing.T) {
	errs := ValidatePostForm(PostForm{})

	want := map[string]string{
		"title":      "Title is required",
		"content":    "Content is required",
		"excerpt":    "Excerpt is required",
		"category":   "Category is required",
		"coverImage": "Cover image URL is required",
	}
	if len(errs) != len(want) {
		t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(want))
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("errs[%s] = %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidatePostForm_ShortTitle(t *testing.T) {
	form := validForm()
	form.Title = "Hi"
	errs := ValidatePostForm(form)
	if errs["title"] != "Title must be at least 5 characters" {
		t.Errorf("errs[title] = %q", errs["title"])
	}
}

func TestValidateTag(t *testing.T) {
	existing := []string{"Go", "Web"}
	tests := []struct {
		tag  string
		want string
	}{
		{"", "Tag cannot be empty"},
		{"   ", "Tag cannot be empty"},
		{"Go", "Tag already exists"},
		{" Web ", "Tag already exists"},
		{"go", ""},
		{"Databases", ""},
	}
	for _, tt := range tests {
		if got := ValidateTag(tt.tag, existing); got != tt.want {
			t.Errorf("ValidateTag(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestPostFormInputSanitizesTitleAndExcerptOnly(t *testing.T) {
	form := validForm()
	form.Title = "<script>Title</script>"
	form.Excerpt = `"quoted"`
	form.Content = "<em>markdown</em>"

	in := form.Input()
	if in.Title != "&lt;script&gt;Title&lt;/script&gt;" {
		t.Errorf("Title = %q", in.Title)
	}
	if in.Excerpt != "&quot;quoted&quot;" {
		t.Errorf("Excerpt = %q", in.Excerpt)
	}
	if in.Content != "<em>markdown</em>" {
		t.Errorf("Content was altered: %q", in.Content)
	}
}

func TestValidatePatch(t *testing.T) {
	short := "Hey"
	empty := ""
	errs := ValidatePatch(model.PostPatch{Title: &short, Category: &empty})
	if errs["title"] == "" || errs["category"] != "Category is required" {
		t.Errorf("ValidatePatch() = %v", errs)
	}
	if errs := ValidatePatch(model.PostPatch{}); errs.HasErrors() {
		t.Errorf("empty patch should be valid, got %v", errs)
	}
}

func TestSanitizePatch(t *testing.T) {
	title := "<b>Bold</b>"
	p := model.PostPatch{Title: &title}
	SanitizePatch(&p)
	if *p.Title != "&lt;b&gt;Bold&lt;/b&gt;" {
		t.Errorf("Title = %q", *p.Title)
	}
	if title != "<b>Bold</b>" {
		t.Errorf("caller's string was modified: %q", title)
	}
}
