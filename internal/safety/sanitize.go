package safety

import (
	"regexp"
	"strings"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	jsSchemePattern   = regexp.MustCompile(`(?i)javascript\s*:`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Sanitize strips HTML tags and javascript: schemes from free text and
// collapses runs of whitespace. It is defense-in-depth behind the
// prohibited-term scan, not the primary safety gate. Sanitizing already
// sanitized text is a no-op.
func Sanitize(text string) string {
	out := htmlTagPattern.ReplaceAllString(text, "")
	out = jsSchemePattern.ReplaceAllString(out, "")
	out = whitespacePattern.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
