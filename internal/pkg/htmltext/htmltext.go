// Package htmltext extracts plain text from HTML fragments.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Extract returns the concatenated text content of an HTML fragment,
// with surrounding whitespace trimmed.
func Extract(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(tokenizer.Text())
		}
	}
	return strings.TrimSpace(b.String())
}

// IsEmpty reports whether an HTML fragment has no text content. A body
// consisting solely of empty tags (e.g. "<p></p>") counts as empty.
func IsEmpty(fragment string) bool {
	return Extract(fragment) == ""
}
