package extractor

import (
	"regexp"
	"strings"

	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/ysmood/gson"
)

// assignmentPatterns locate inline product objects. Each match ends right
// before the opening brace of the literal.
var assignmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`window\.themeConfig\(\s*['"]product['"]\s*,\s*`),
	regexp.MustCompile(`var\s+product\s*=\s*`),
	regexp.MustCompile(`window\.product\s*=\s*`),
	regexp.MustCompile(`window\.productData\s*=\s*`),
	regexp.MustCompile(`__INITIAL_STATE__\s*=\s*`),
}

// descriptionKeys are tried in order on the decoded object.
var descriptionKeys = []string{"description", "content", "body_html", "details", "productDescription"}

// maxLiteral bounds the object literal scanned after an assignment.
const maxLiteral = 2 << 20

// balancedObject returns the object literal at the start of s, matching
// braces outside string literals. ok is false when s does not start with
// "{" or the literal never closes.
func balancedObject(s string) (literal string, ok bool) {
	if !strings.HasPrefix(s, "{") {
		return "", false
	}
	if len(s) > maxLiteral {
		s = s[:maxLiteral]
	}
	depth := 0
	var quote byte
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

// parseObject decodes literal as a JSON object. Malformed input, including
// JavaScript-only syntax, yields nil.
func parseObject(literal string) map[string]any {
	obj, _ := gson.NewFrom(literal).Val().(map[string]any)
	return obj
}

// inlineDescription searches script text for a known product assignment and
// returns the first description of at least minChars characters after tag
// stripping and entity decoding, or "".
func inlineDescription(script string, minChars int) string {
	for _, re := range assignmentPatterns {
		for _, loc := range re.FindAllStringIndex(script, -1) {
			literal, ok := balancedObject(script[loc[1]:])
			if !ok {
				continue
			}
			obj := parseObject(literal)
			if obj == nil {
				continue
			}
			for _, key := range descriptionKeys {
				raw, ok := obj[key].(string)
				if !ok || strings.TrimSpace(raw) == "" {
					continue
				}
				if text := cleaner.StripTags(raw); cleaner.RuneLen(text) >= minChars {
					return text
				}
			}
		}
	}
	return ""
}
