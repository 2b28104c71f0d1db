// Package urlx extracts URLs from free text (chat messages, social posts).
package urlx

import (
	"regexp"
	"strings"
)

// Permissive on purpose: callers treat the first match in document order as
// "the" target URL and validate it properly downstream.
var urlRe = regexp.MustCompile(`https?://[^\s<>"']+`) //nolint:gochecknoglobals

// Extract returns every URL contained in text, in document order. Empty
// input or no matches yields an empty slice, never an error.
func Extract(text string) []string {
	matches := urlRe.FindAllString(text, -1)

	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, strings.TrimRight(m, ".,;:!?)]}"))
	}

	return urls
}

// First returns the first URL in text, if any.
func First(text string) (string, bool) {
	urls := Extract(text)
	if len(urls) == 0 {
		return "", false
	}

	return urls[0], true
}
