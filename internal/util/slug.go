// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides URL slug generation for category and tag listings.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugChars matches runs of anything that is not a lowercase letter or digit
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify converts a name such as "Web Development" into "web-development".
// Accents are stripped and other scripts are transliterated to ASCII.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(unidecode.Unidecode(result))
	result = nonSlugChars.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
