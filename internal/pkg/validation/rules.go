package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Identifier pattern for course ids: no whitespace or commas
	IdentifierPattern = `^[^\s,]+$`

	// Name validation min/max length
	NameMinLength = 1
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Identifier *regexp.Regexp
}{
	Identifier: regexp.MustCompile(IdentifierPattern),
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation over the trimmed value
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// IsIdentifier reports whether value is a usable course or professor id
func IsIdentifier(value string) bool {
	return NewStringValidation(value).WithPattern(CompiledPatterns.Identifier).Validate()
}

// IsName reports whether value is a usable person or course name
func IsName(value string) bool {
	return NewStringValidation(value).
		WithMinLength(NameMinLength).
		WithMaxLength(NameMaxLength).
		Validate()
}
