package cleaner

import (
	"log/slog"
	nurl "net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// placeholderURL resolves relative links when the page URL is unknown.
const placeholderURL = "https://localhost/"

// ArticleText runs the Mozilla Readability algorithm over doc and returns
// the normalized text of the detected article, or "" when readability could
// not find one.
func ArticleText(doc *goquery.Document, sourceURL string) string {
	if sourceURL == "" {
		sourceURL = placeholderURL
	}
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		slog.Debug("readability: invalid source URL", "url", sourceURL, "error", err)
		return ""
	}

	markup, err := doc.Html()
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(markup), parsedURL)
	if err != nil {
		slog.Debug("readability: extraction failed", "url", sourceURL, "error", err)
		return ""
	}
	return CleanText(article.TextContent)
}
