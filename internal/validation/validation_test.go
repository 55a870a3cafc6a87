// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"admin@example.com", true},
		{"first.last@sub.example.org", true},
		{"a@b", false},
		{"a b@c.com", false},
		{"a@b c.com", false},
		{"@b.co", false},
		{"a@@b.co", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Abcdefg1", true},
		{"no uppercase", "abcdefg1", false},
		{"no lowercase", "ABCDEFG1", false},
		{"no digit", "Abcdefgh", false},
		{"too short", "Abc12", false},
		{"seven chars", "Abcdef1", false},
		{"long with symbols", "Str0ng!Passw0rd", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPassword(tt.password); got != tt.want {
				t.Errorf("IsValidPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Al", true},
		{"Mary-Jane Watson", true},
		{"A", false},
		{"R2D2", false},
		{"O'Brien", false},
		{"", false},
		{"José", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidName(tt.name); got != tt.want {
				t.Errorf("IsValidName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsValidTextAndTitle(t *testing.T) {
	if !IsValidText("ok") {
		t.Error(`IsValidText("ok") = false, want true`)
	}
	if IsValidText("  a  ") {
		t.Error(`IsValidText("  a  ") = true, want false`)
	}
	if !IsValidTitle("Hello") {
		t.Error(`IsValidTitle("Hello") = false, want true`)
	}
	if IsValidTitle("  Hey  ") {
		t.Error(`IsValidTitle("  Hey  ") = true, want false`)
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"markup and quotes", "<b>'hi'</b>", "&lt;b&gt;&#039;hi&#039;&lt;/b&gt;"},
		{"double quotes", `say "x"`, "say &quot;x&quot;"},
		{"plain", "nothing to escape", "nothing to escape"},
		{"existing entity untouched", "&lt;", "&lt;"},
		{"ampersand kept", "a & b", "a & b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeTextAppliedOnce(t *testing.T) {
	once := SanitizeText("<")
	twice := SanitizeText(once)
	if once != "&lt;" || twice != "&lt;" {
		t.Errorf("SanitizeText not stable: once=%q twice=%q", once, twice)
	}
}
