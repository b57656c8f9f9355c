package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column limits mirror the schema.
const (
	maxNameLen    = 100
	maxCityLen    = 100
	maxStateLen   = 100
	maxAddressLen = 120
	maxPhoneLen   = 20
	maxWebsiteLen = 200
)

// FieldError reports a single field that breaks a domain rule.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func required(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Reason: "is required"}
	}
	return optional(field, value, max)
}

func optional(field, value string, max int) error {
	if max > 0 && utf8.RuneCountInString(value) > max {
		return &FieldError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}

func validateGenres(genres []string) error {
	for i, g := range genres {
		if strings.TrimSpace(g) == "" {
			return &FieldError{Field: fmt.Sprintf("genres[%d]", i), Reason: "must not be empty"}
		}
	}
	return nil
}

// NormalizeGenres drops repeated genres, keeping the first occurrence, and
// returns an empty (non-nil) slice for no genres.
func NormalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]bool, len(genres))
	for _, g := range genres {
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}
