package engine

import (
	"strings"

	"github.com/ysmood/gson"
	"golang.org/x/net/html"
)

// envelopeFields are the JSON keys a scraping backend may wrap markup in,
// in priority order.
var envelopeFields = []string{"html", "body", "content"}

// Unwrap returns the markup carried by body. A body that starts with "{" and
// decodes to an object holding a non-empty html/body/content string yields
// that string; anything else is treated as markup as-is.
func Unwrap(body string) string {
	text := strings.TrimSpace(body)
	if !strings.HasPrefix(text, "{") {
		return text
	}
	// gson decodes lazily and yields nil for malformed input.
	envelope := gson.NewFrom(text)
	for _, key := range envelopeFields {
		if s, ok := envelope.Get(key).Val().(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return text
}

// sniffTitle uses the HTML tokenizer to find the first <title> text without
// building a tree.
func sniffTitle(markup string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	inTitle := false
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(tokenizer.Text()))
			}
		case html.EndTagToken:
			if inTitle {
				return ""
			}
		}
	}
}
