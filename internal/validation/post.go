// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/ocms-blog/internal/model"
)

// PostForm is the post editor payload before it is turned into a model.PostInput.
type PostForm struct {
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt" validate:"required"`
	Content    string   `json:"content"`
	Category   string   `json:"category" validate:"required"`
	CoverImage string   `json:"coverImage" validate:"required"`
	Tags       []string `json:"tags"`
}

// fieldLabels are the display names used in "<label> is required" messages.
var fieldLabels = map[string]string{
	"excerpt":    "Excerpt",
	"category":   "Category",
	"coverImage": "Cover image URL",
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names so messages line up with the form fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// ValidatePostForm checks every field of the post editor and returns the
// messages keyed by JSON field name. An empty result means the form is valid.
func ValidatePostForm(form PostForm) FieldErrors {
	errs := FieldErrors{}
	errs.Check(FieldTitle, form.Title)
	errs.Check(FieldContent, form.Content)

	err := structValidator.Struct(form)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			errs.Add(fe.Field(), structMessage(fe))
		}
	}
	return errs
}

func structMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	default:
		return label + " is invalid"
	}
}

// ValidateTag checks a tag about to be added to existing.
func ValidateTag(tag string, existing []string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "Tag cannot be empty"
	}
	if slices.Contains(existing, tag) {
		return "Tag already exists"
	}
	return ""
}

// Input converts the form to repository input, escaping title and excerpt.
// Content is passed through unchanged because it holds markdown.
func (f PostForm) Input() model.PostInput {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return model.PostInput{
		Title:      SanitizeText(f.Title),
		Excerpt:    SanitizeText(f.Excerpt),
		Content:    f.Content,
		Category:   f.Category,
		Tags:       slices.Clone(tags),
		CoverImage: f.CoverImage,
	}
}

// SanitizePatch escapes the title and excerpt of a partial update in place.
func SanitizePatch(p *model.PostPatch) {
	if p.Title != nil {
		s := SanitizeText(*p.Title)
		p.Title = &s
	}
	if p.Excerpt != nil {
		s := SanitizeText(*p.Excerpt)
		p.Excerpt = &s
	}
}

// ValidatePatch checks only the fields present in a partial update.
func ValidatePatch(p model.PostPatch) FieldErrors {
	errs := FieldErrors{}
	if p.Title != nil {
		errs.Check(FieldTitle, *p.Title)
	}
	if p.Content != nil {
		errs.Check(FieldContent, *p.Content)
	}
	if p.Excerpt != nil && *p.Excerpt == "" {
		errs.Add("excerpt", fieldLabels["excerpt"]+" is required")
	}
	if p.Category != nil && *p.Category == "" {
		errs.Add("category", fieldLabels["category"]+" is required")
	}
	if p.CoverImage != nil && *p.CoverImage == "" {
		errs.Add("coverImage", fieldLabels["coverImage"]+" is required")
	}
	return errs
}
