package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeEmail canonicalizes a user-typed email address: Unicode
// NFKC normalization, surrounding whitespace stripped, lowercased.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}
