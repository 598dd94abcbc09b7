// Package text holds the small text helpers the page views share.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CountRunes counts Unicode characters rather than bytes, so "日本語" is 3.
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate cuts s to at most n characters, appending "..." when it cut.
// Trailing whitespace before the ellipsis is dropped.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if CountRunes(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimRightFunc(string(r[:n]), unicode.IsSpace) + "..."
}
