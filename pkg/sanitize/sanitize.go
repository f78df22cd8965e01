// Package sanitize normalizes free-text fields before they reach validation
// and storage.
package sanitize

import (
	"strings"
	"unicode"
)

// Name trims a person or resource name and collapses internal whitespace.
func Name(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		result.WriteRune(r)
		lastWasSpace = false
	}

	return result.String()
}

// Text trims leading and trailing whitespace and strips control characters,
// keeping internal line breaks for descriptions.
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
