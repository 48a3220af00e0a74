// Package matcher decides whether a free-text guess names a catalog entry.
package matcher

import "strings"

// Normalize lowercases text and drops every rune outside [a-z0-9].
func Normalize(text string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
