package cleaner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Ellipsis marks a clipped description.
const Ellipsis = "…"

var tagRe = regexp.MustCompile(`<[^>]+>`)

// CleanText collapses every whitespace run (Unicode spaces included) to a
// single space and trims.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeLabel lowercases and whitespace-normalizes text for comparisons.
func NormalizeLabel(s string) string {
	return strings.ToLower(CleanText(s))
}

// RuneLen returns the length of s in characters.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Clip cleans text and bounds it to maxChars characters. Text longer than
// maxChars is cut to maxChars-1 characters followed by Ellipsis.
func Clip(text string, maxChars int) string {
	text = CleanText(text)
	if maxChars <= 0 || RuneLen(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars-1]) + Ellipsis
}

// StripTags removes markup from an HTML fragment found outside the DOM
// (script literals), decodes entities and normalizes whitespace.
func StripTags(fragment string) string {
	text := tagRe.ReplaceAllString(fragment, " ")
	return CleanText(html.UnescapeString(text))
}
