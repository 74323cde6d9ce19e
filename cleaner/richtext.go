package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// minParagraph is the shortest paragraph kept by RichText.
const minParagraph = 10

// RichText linearizes a description block. Tables become "key: value" rows
// joined by " | ", lists become bullet-joined items, and paragraphs outside
// lists and tables are deduplicated. When none of those exist the plain text
// of the block is returned.
func RichText(s *goquery.Selection) string {
	var parts []string

	s.Find("table").Each(func(_ int, table *goquery.Selection) {
		var rows []string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			td := tr.Find("td").First()
			if td.Length() == 0 {
				return
			}
			value := TextOf(td)
			if value == "" {
				return
			}
			key := ""
			if th := tr.Find("th").First(); th.Length() > 0 {
				key = TextOf(th)
			}
			row := strings.Trim(key+": "+value, ": ")
			if row != "" {
				rows = append(rows, row)
			}
		})
		if len(rows) > 0 {
			parts = append(parts, strings.Join(rows, " | "))
		}
	})

	s.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		var items []string
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := TextOf(li); t != "" {
				items = append(items, t)
			}
		})
		if len(items) > 0 {
			parts = append(parts, "• "+strings.Join(items, " • "))
		}
	})

	seen := make(map[string]struct{})
	s.Find("p").Each(func(_ int, p *goquery.Selection) {
		if p.ParentsFilteredUntilSelection("ul, ol, table", s).Length() > 0 {
			return
		}
		text := paragraphText(p.Nodes[0])
		if RuneLen(text) < minParagraph {
			return
		}
		key := strings.ToLower(text)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		parts = append(parts, text)
	})

	if len(parts) == 0 {
		return TextOf(s)
	}
	return CleanText(strings.Join(parts, " "))
}

// paragraphText keeps the paragraph's own text and its inline formatting,
// dropping nested blocks such as embedded widgets.
func paragraphText(p *html.Node) string {
	var b strings.Builder
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type == html.ElementNode && c.Data == "br":
			b.WriteByte(' ')
		case c.Type == html.ElementNode && inline[c.Data]:
			writeText(&b, c)
		}
	}
	return CleanText(b.String())
}
