package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean normalizes s to NFC and collapses runs of whitespace into single spaces.
func Clean(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Optional returns a pointer to the cleaned value, or nil when nothing is left.
func Optional(s string) *string {
	c := Clean(s)
	if c == "" {
		return nil
	}
	return &c
}

// Deref returns the pointed-to string or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// FirstNonEmpty returns the first value that is non-empty after cleaning.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if c := Clean(v); c != "" {
			return c
		}
	}
	return ""
}
