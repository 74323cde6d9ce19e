package cleaner

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// minHeadingTitle is the shortest <h1> accepted as the product title.
const minHeadingTitle = 5

// siteSuffixRe matches a trailing " - Brand", " – Site" or "| Shop" suffix.
// A bare hyphen inside a word ("Wi-Fi") is not a separator.
var siteSuffixRe = regexp.MustCompile(`(?:\s+[-–—]\s+|\s*\|).*$`)

// ResolveTitle finds the product name used to validate candidate
// descriptions: the first <h1>, then og:title, then the page title.
func ResolveTitle(doc *goquery.Document) string {
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if t := StripSiteSuffix(TextOf(h1)); RuneLen(t) >= minHeadingTitle {
			return t
		}
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := StripSiteSuffix(og); t != "" {
			return t
		}
	}
	return StripSiteSuffix(MetaTitle(doc))
}

// StripSiteSuffix removes a trailing site or brand suffix. The text is
// returned unchanged when stripping would leave nothing.
func StripSiteSuffix(title string) string {
	title = CleanText(title)
	if stripped := CleanText(siteSuffixRe.ReplaceAllString(title, "")); stripped != "" {
		return stripped
	}
	return title
}
