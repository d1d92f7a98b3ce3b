package services

import "strings"

// Matches reports whether a normalised query matches a normalised body.
//
// Either condition is sufficient:
//  1. body contains the whole query as a contiguous substring;
//  2. body contains at least one whitespace-separated word of the query.
//
// The second rule favours recall and will match on single common words.
// An empty query matches nothing.
func Matches(normalizedQuery, normalizedBody string) bool {
	if normalizedQuery == "" {
		return false
	}
	if strings.Contains(normalizedBody, normalizedQuery) {
		return true
	}
	for _, word := range strings.Fields(normalizedQuery) {
		if strings.Contains(normalizedBody, word) {
			return true
		}
	}
	return false
}

// NameMatches reports whether a normalised query occurs in a file name.
// Unlike Matches there is no per-word fallback.
func NameMatches(normalizedQuery, name string) bool {
	if normalizedQuery == "" {
		return false
	}
	return strings.Contains(Normalize(name), normalizedQuery)
}
