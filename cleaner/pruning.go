package cleaner

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Pruned is the working copy of a product page with every multi-product
// region (related items, recommendations, listing grids) taken out. The
// source document is never modified.
type Pruned struct {
	// Doc is the pruned copy every extraction strategy reads from.
	Doc *goquery.Document

	// Removed counts the subtrees that were cut.
	Removed int
}

// pruner collects nodes to drop without touching the source tree, so later
// rules see the same structure earlier rules saw.
type pruner struct {
	removed map[*html.Node]struct{}
	primary *html.Node // first <h1>, anchors the main product area
}

// Prune computes the removed-node set on doc in three passes and returns a
// copy built without those subtrees:
//
//  1. containers whose class/id names a related or recommended region
//  2. the section introduced by a "related products" style heading
//  3. containers holding three or more product-card descendants, unless they
//     are the main product area
func Prune(doc *goquery.Document) *Pruned {
	p := &pruner{removed: make(map[*html.Node]struct{})}
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		p.primary = h1.Nodes[0]
	}

	p.excludedSections(doc)
	p.relatedHeadings(doc)
	p.cardGrids(doc)

	var root *html.Node
	if len(doc.Nodes) > 0 {
		root = cloneWithout(doc.Nodes[0], p.removed)
	} else {
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Pruned{Doc: goquery.NewDocumentFromNode(root), Removed: len(p.removed)}
}

func (p *pruner) excludedSections(doc *goquery.Document) {
	doc.Find("div, section, aside, ul, ol").Each(func(_ int, s *goquery.Selection) {
		if p.gone(s.Nodes[0]) {
			return
		}
		if IsExcludedClass(ClassID(s)) {
			p.mark(s.Nodes[0])
		}
	})
}

func (p *pruner) relatedHeadings(doc *goquery.Document) {
	doc.Find("h2, h3, h4, h5, h6").Each(func(_ int, h *goquery.Selection) {
		if p.gone(h.Nodes[0]) || !IsRelatedHeading(NormalizeLabel(TextOf(h))) {
			return
		}
		container := h.Parent().Closest("section, div, aside")
		if container.Length() > 0 && !p.holdsPrimary(container.Nodes[0]) {
			p.mark(container.Nodes[0])
			return
		}
		// No container of its own: drop the heading and what follows it.
		p.mark(h.Nodes[0])
		h.NextAll().Each(func(_ int, sib *goquery.Selection) {
			p.mark(sib.Nodes[0])
		})
	})
}

func (p *pruner) cardGrids(doc *goquery.Document) {
	containers := doc.Find("div, section, ul")
	// Innermost first, so a grid is cut before its page wrapper is judged.
	for i := containers.Length() - 1; i >= 0; i-- {
		s := containers.Eq(i)
		n := s.Nodes[0]
		if p.gone(n) || containsAny(ClassOf(s), mainAreaPatterns) || p.holdsPrimary(n) {
			continue
		}
		cards := 0
		s.Find("div, li, article").Each(func(_ int, c *goquery.Selection) {
			if !p.gone(c.Nodes[0]) && containsAny(ClassOf(c), cardPatterns) {
				cards++
			}
		})
		if cards >= 3 {
			p.mark(n)
		}
	}
}

func (p *pruner) mark(n *html.Node) {
	p.removed[n] = struct{}{}
}

// gone reports whether n or one of its ancestors is already removed.
func (p *pruner) gone(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if _, ok := p.removed[n]; ok {
			return true
		}
	}
	return false
}

func (p *pruner) holdsPrimary(n *html.Node) bool {
	for c := p.primary; c != nil; c = c.Parent {
		if c == n {
			return true
		}
	}
	return false
}

// cloneWithout deep-copies n, skipping removed subtrees.
func cloneWithout(n *html.Node, removed map[*html.Node]struct{}) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if _, skip := removed[child]; skip {
			continue
		}
		c.AppendChild(cloneWithout(child, removed))
	}
	return c
}
