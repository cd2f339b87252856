package utils

import "strings"

// MatchesKeyword reports whether any of the fields contains the keyword,
// case-insensitive. A blank keyword matches everything.
func MatchesKeyword(keyword string, fields ...string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), kw) {
			return true
		}
	}
	return false
}
