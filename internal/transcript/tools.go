package transcript

import (
	"html"
	"regexp"
	"strings"
	"time"
)

var (
	tagPattern        = regexp.MustCompile(`<.*?>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FromUnix converts a source API timestamp to UTC time.
func FromUnix(timestamp int64) time.Time {
	return time.Unix(timestamp, 0).UTC()
}

// WrapInParagraphIfNeeded ensures text is enclosed in a paragraph element,
// the smallest block the rich-text schema accepts.
func WrapInParagraphIfNeeded(text string) string {
	if text == "" {
		return ""
	}
	if strings.HasPrefix(text, "<p>") {
		return text
	}
	return "<p>" + text + "</p>"
}

// RemoveParagraphWrapper strips a single enclosing paragraph element.
func RemoveParagraphWrapper(text string) string {
	if strings.HasPrefix(text, "<p>") && strings.HasSuffix(text, "</p>") {
		return text[3 : len(text)-4]
	}
	return text
}

// SanitizeRichText escapes message bodies so user-written markup survives as
// literal text in the rendered transcript.
func SanitizeRichText(text string) string {
	return html.EscapeString(text)
}

// SanitizeSearchText flattens markup into plain text for the search index:
// tags and non-breaking spaces become spaces, whitespace runs collapse, and
// characters the index treats specially are neutralized.
func SanitizeSearchText(text string) string {
	text = tagPattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, `"`, " ")
	text = strings.ReplaceAll(text, `\`, `\\`)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
