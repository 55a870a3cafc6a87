// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validation

// Field identifies a validated form field.
type Field int

// Known form fields. The zero value is not a field.
const (
	FieldEmail Field = iota + 1
	FieldPassword
	FieldName
	FieldTitle
	FieldContent
	FieldComment
)

type fieldRule struct {
	name     string
	required string
	valid    func(string) bool
	invalid  string
}

var fieldRules = map[Field]fieldRule{
	FieldEmail: {
		name:     "email",
		required: "Email is required",
		valid:    IsValidEmail,
		invalid:  "Please enter a valid email address",
	},
	FieldPassword: {
		name:     "password",
		required: "Password is required",
		valid:    IsValidPassword,
		invalid:  "Password must be at least 8 characters with 1 uppercase, 1 lowercase, and 1 number",
	},
	FieldName: {
		name:     "name",
		required: "Name is required",
		valid:    IsValidName,
		invalid:  "Name must be at least 2 characters (letters, spaces, and hyphens only)",
	},
	FieldTitle: {
		name:     "title",
		required: "Title is required",
		valid:    IsValidTitle,
		invalid:  "Title must be at least 5 characters",
	},
	FieldContent: {
		name:     "content",
		required: "Content is required",
		valid:    IsValidText,
		invalid:  "Content must be at least 2 characters",
	},
	FieldComment: {
		name:     "comment",
		required: "Comment is required",
		valid:    IsValidText,
		invalid:  "Comment must be at least 2 characters",
	},
}

// String returns the wire name of the field.
func (f Field) String() string {
	if r, ok := fieldRules[f]; ok {
		return r.name
	}
	return "unknown"
}

// ParseField maps a wire name such as "email" to its Field.
func ParseField(name string) (Field, bool) {
	for f, r := range fieldRules {
		if r.name == name {
			return f, true
		}
	}
	return 0, false
}

// ErrorFor returns the message for an invalid value, or "" when the value is
// acceptable. Unknown fields always pass.
func ErrorFor(field Field, value string) string {
	rule, ok := fieldRules[field]
	if !ok {
		return ""
	}
	if value == "" {
		return rule.required
	}
	if !rule.valid(value) {
		return rule.invalid
	}
	return ""
}

// GetValidationError is ErrorFor keyed by wire name. Unknown names pass.
func GetValidationError(name, value string) string {
	f, ok := ParseField(name)
	if !ok {
		return ""
	}
	return ErrorFor(f, value)
}

// FieldErrors maps a field name to its error message.
type FieldErrors map[string]string

// Add records msg for name when msg is not empty.
func (fe FieldErrors) Add(name, msg string) {
	if msg != "" {
		fe[name] = msg
	}
}

// Check runs ErrorFor and records the result under the field's wire name.
func (fe FieldErrors) Check(field Field, value string) {
	fe.Add(field.String(), ErrorFor(field, value))
}

// HasErrors reports whether any message was recorded.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}
