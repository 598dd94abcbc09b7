package entity

import (
	"regexp"
	"strings"
)

var (
	slugNonWord   = regexp.MustCompile(`[^\w\s-]`)
	slugSeparator = regexp.MustCompile(`[\s_-]+`)
)

// Slugify derives a URL-safe key from a title: lowercased, non-word characters
// removed, whitespace and hyphen runs collapsed to one hyphen, edge hyphens trimmed.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugNonWord.ReplaceAllString(s, "")
	s = slugSeparator.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
