package extractor

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/surejsai/GenericProductFluxer/models"
	"github.com/ysmood/gson"
)

var errNoValidJSONLD = errors.New("no structured-data block could be parsed")

// ldProduct is a structured-data node declared as a Product that carries a
// string description.
type ldProduct struct {
	Name        string
	Description string
}

// asProduct accepts node only when its @type (string or list) names Product
// and it has a non-empty string description.
func asProduct(node map[string]any) (ldProduct, bool) {
	isProduct := false
	switch t := node["@type"].(type) {
	case string:
		isProduct = strings.EqualFold(t, "product")
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && strings.EqualFold(s, "product") {
				isProduct = true
				break
			}
		}
	}
	if !isProduct {
		return ldProduct{}, false
	}
	desc, ok := node["description"].(string)
	if !ok || strings.TrimSpace(desc) == "" {
		return ldProduct{}, false
	}
	name, _ := node["name"].(string)
	return ldProduct{Name: name, Description: desc}, true
}

// walkLD visits every object in v, descending into arrays and @graph lists.
func walkLD(v any, visit func(map[string]any)) {
	switch t := v.(type) {
	case map[string]any:
		visit(t)
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				walkLD(item, visit)
			}
		}
	case []any:
		for _, item := range t {
			walkLD(item, visit)
		}
	}
}

// nameScore ranks a product name against the page title: exact match 2.0,
// containment 1.5, otherwise 1.0 plus the share of name words in the title.
func nameScore(name, title string) float64 {
	if name == "" || title == "" {
		return 1.0
	}
	n, t := strings.ToLower(name), strings.ToLower(title)
	switch {
	case n == t:
		return 2.0
	case strings.Contains(t, n) || strings.Contains(n, t):
		return 1.5
	}
	nameWords := strings.Fields(n)
	titleWords := make(map[string]struct{})
	for _, w := range strings.Fields(t) {
		titleWords[w] = struct{}{}
	}
	seen := make(map[string]struct{})
	shared := 0
	for _, w := range nameWords {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := titleWords[w]; ok {
			shared++
		}
	}
	if len(seen) == 0 {
		return 1.0
	}
	return 1.0 + float64(shared)/float64(len(seen))
}

func jsonLDStrategy(p *page) StrategyResult {
	var (
		best      *ldProduct
		bestScore float64
		blocks    int
		parsed    int
	)

	p.doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		blocks++
		data := gson.NewFrom(raw).Val()
		if data == nil {
			return
		}
		parsed++
		walkLD(data, func(node map[string]any) {
			prod, ok := asProduct(node)
			if !ok {
				return
			}
			score := nameScore(prod.Name, p.title)
			if best == nil || score > bestScore {
				best, bestScore = &prod, score
			}
		})
	})

	if best != nil {
		return found(models.MethodJSONLD, cleaner.StripTags(best.Description), bestScore)
	}
	if blocks > 0 && parsed == 0 {
		return failed(models.MethodJSONLD, errNoValidJSONLD)
	}
	return StrategyResult{}
}
