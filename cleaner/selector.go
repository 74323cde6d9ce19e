package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Selector is a CSS selector compiled once at package init.
type Selector struct {
	Raw     string
	Matcher goquery.Matcher
}

// MustCompile compiles each selector in order, panicking on invalid syntax.
// Use it only for package-level selector tables.
func MustCompile(raws ...string) []Selector {
	out := make([]Selector, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Selector{Raw: raw, Matcher: cascadia.MustCompile(raw)})
	}
	return out
}

// MustGroup compiles a selector group ("a, b, c") into a single matcher.
func MustGroup(raws ...string) goquery.Matcher {
	return cascadia.MustCompile(strings.Join(raws, ", "))
}

// ClassOf returns the lowercased class attribute of the first node.
func ClassOf(s *goquery.Selection) string {
	class, _ := s.Attr("class")
	return strings.ToLower(class)
}

// ClassID returns the lowercased class and id attributes joined by a space.
func ClassID(s *goquery.Selection) string {
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	return strings.ToLower(class + " " + id)
}

// HasExcludedAncestor reports whether any ancestor of s carries a
// related/recommended class or id.
func HasExcludedAncestor(s *goquery.Selection) bool {
	found := false
	s.Parents().EachWithBreak(func(_ int, a *goquery.Selection) bool {
		found = IsExcludedClass(ClassID(a))
		return !found
	})
	return found
}

// inline elements do not break words when linearized.
var inline = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "cite": true,
	"code": true, "data": true, "dfn": true, "em": true, "font": true, "i": true,
	"kbd": true, "mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "time": true,
	"u": true, "var": true,
}

var nonText = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"svg": true, "iframe": true,
}

// TextOf returns the visible text of s. Block boundaries become spaces,
// inline markup does not, and script/style content is skipped.
func TextOf(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		writeText(&b, n)
	}
	return CleanText(b.String())
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if nonText[n.Data] {
			return
		}
		if n.Data == "br" {
			b.WriteByte(' ')
			return
		}
	}
	block := n.Type == html.ElementNode && !inline[n.Data]
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte(' ')
	}
}

// NextElement returns the element following n in document order, skipping
// n's own descendants, or nil at the end of the document.
func NextElement(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		for sib := cur.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type == html.ElementNode {
				return sib
			}
		}
	}
	return nil
}
