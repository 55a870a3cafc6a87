// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validation provides the form-field predicates, the text sanitizer
// and the field error messages used before input reaches the repository.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s-]+$`)
)

// IsValidEmail checks for a local@domain.tld shape. It is not RFC 5322.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword requires at least 8 characters with one uppercase letter,
// one lowercase letter and one digit (ASCII).
func IsValidPassword(password string) bool {
	if utf8.RuneCountInString(password) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

// IsValidName requires at least 2 characters made of letters, spaces and hyphens.
func IsValidName(name string) bool {
	return utf8.RuneCountInString(name) >= 2 && nameRegex.MatchString(name)
}

// IsValidText requires at least 2 characters once surrounding whitespace is removed.
func IsValidText(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= 2
}

// IsValidTitle requires at least 5 characters once surrounding whitespace is removed.
func IsValidTitle(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) >= 5
}

var textReplacer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// SanitizeText escapes < > " and ' as HTML entities in a single pass.
// Existing entities are not re-escaped. Post content must not go through here:
// it carries markdown.
func SanitizeText(text string) string {
	return textReplacer.Replace(text)
}
