package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/surejsai/GenericProductFluxer/models"
)

// mainSectionSelectors are tried in order.
var mainSectionSelectors = cleaner.MustCompile(
	`[data-product-description]`, `[data-description]`,
	`.product-description`, `.product-details`, `.product-info`,
	`.pdp-description`, `.pdp-details`, `.pdp-info`,
	`#product-description`, `#description`, `#product-details`,
	`.ProductDescription`, `.ProductDetails`, `.product__description`,
	`[itemprop="description"]`,
	`.woocommerce-product-details__short-description`,
	`.product-single__description`,
)

var (
	priceMarkers     = []string{"price", "cost", "amount"}
	descClassMarkers = []string{"description", "details", "info", "content"}
)

const priceElementsChecked = 3

func mainSectionStrategy(p *page) StrategyResult {
	for _, sel := range mainSectionSelectors {
		var text string
		p.doc.FindMatcher(sel.Matcher).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			if cleaner.HasExcludedAncestor(el) {
				return true
			}
			if t := cleaner.RichText(el); p.qualifies(t) {
				text = t
				return false
			}
			return true
		})
		if text != "" {
			return found(models.MethodMainSection, text, 0)
		}
	}

	// Descriptions often sit in the same block as the price.
	prices := p.doc.Find("span, div, p").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classHasAny(s, priceMarkers)
	})
	for i := 0; i < prices.Length() && i < priceElementsChecked; i++ {
		block := prices.Eq(i).Parent().Closest("div, section, article")
		if block.Length() == 0 {
			continue
		}
		desc := block.Find("div, p, section").FilterFunction(func(_ int, s *goquery.Selection) bool {
			return classHasAny(s, descClassMarkers)
		}).First()
		if desc.Length() == 0 {
			continue
		}
		if t := cleaner.RichText(desc); p.qualifies(t) {
			return found(models.MethodMainSection, t, 0)
		}
	}
	return StrategyResult{}
}

func classHasAny(s *goquery.Selection, markers []string) bool {
	class := cleaner.ClassOf(s)
	if class == "" {
		return false
	}
	for _, m := range markers {
		if strings.Contains(class, m) {
			return true
		}
	}
	return false
}
