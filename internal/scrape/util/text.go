package util

import (
	"strings"
	"unicode/utf8"
)

// DescriptionLimit is the cap applied to extracted descriptions before the
// ellipsis marker is appended.
const DescriptionLimit = 500

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Truncate caps s at DescriptionLimit characters and marks the cut with a
// trailing ellipsis. Shorter text passes through unchanged.
func Truncate(s string) string {
	if len(s) <= DescriptionLimit {
		return s
	}
	cut := DescriptionLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// ContainsAny reports whether the lower-cased haystack contains any of the
// needles. Used for the per-platform closed-posting phrase scans.
func ContainsAny(haystack string, needles ...string) bool {
	low := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(low, n) {
			return true
		}
	}
	return false
}
