package utils

import "strings"

// MaskSecret hides all but the last four characters of a sensitive value.
// Payment credentials are never persisted; this form is safe for logs.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
