package services

import "strings"

// Normalize folds text to lower case and collapses every whitespace run
// into a single space, trimming both ends.
// It is total and idempotent, and must be applied identically to queries
// and document bodies.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
