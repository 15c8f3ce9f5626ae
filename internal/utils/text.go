package utils

import "strings"

// NormalizeTerm lowercases and trims a user-facing search term so city and
// query comparisons are case- and whitespace-insensitive.
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsFold reports whether substr occurs in s, case-insensitively.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
