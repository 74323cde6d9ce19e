package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// OpenGraph holds the Open Graph fields of a page.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
}

// MetaTitle returns the page title: <title>, then og:title, then
// twitter:title. Empty when none is present.
func MetaTitle(doc *goquery.Document) string {
	if t := CleanText(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return firstMeta(doc,
		`meta[property="og:title"]`,
		`meta[name="twitter:title"], meta[property="twitter:title"]`,
	)
}

// MetaDescription returns the page description: the description meta tag,
// then og:description, then twitter:description.
func MetaDescription(doc *goquery.Document) string {
	return firstMeta(doc,
		`meta[name="description"], meta[name="Description"]`,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"], meta[property="twitter:description"]`,
	)
}

// ExtractOpenGraph reads og:* meta tags. Returns nil when the page has none.
func ExtractOpenGraph(doc *goquery.Document) *OpenGraph {
	og := &OpenGraph{}
	found := false

	doc.Find("meta[property]").Each(func(_ int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content, _ := s.Attr("content")
		content = CleanText(content)
		if content == "" {
			return
		}
		switch strings.ToLower(prop) {
		case "og:title":
			og.Title = content
		case "og:description":
			og.Description = content
		case "og:image":
			og.Image = content
		case "og:type":
			og.Type = content
		default:
			return
		}
		found = true
	})

	if !found {
		return nil
	}
	return og
}

func firstMeta(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		var value string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			content, _ := s.Attr("content")
			value = CleanText(content)
			return value == ""
		})
		if value != "" {
			return value
		}
	}
	return ""
}
