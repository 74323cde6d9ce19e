package extractor

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/surejsai/GenericProductFluxer/models"
)

var blockSelectors = cleaner.MustCompile(
	`article`, `main`, `section`, `[role="main"]`,
	`.product-description`, `.product-details`, `#product-description`, `#description`,
	`.product-content`, `.product-body`, `.item-description`,
)

// bestBlockStrategy returns the longest qualifying content container. When
// no container qualifies, the readability article text is tried instead.
func bestBlockStrategy(p *page) StrategyResult {
	var best string
	for _, sel := range blockSelectors {
		p.doc.FindMatcher(sel.Matcher).Each(func(_ int, el *goquery.Selection) {
			class := cleaner.ClassOf(el)
			if cleaner.IsChromeClass(class) || cleaner.IsExcludedClass(class) {
				return
			}
			text := cleaner.TextOf(el)
			if p.qualifies(text) && cleaner.RuneLen(text) > cleaner.RuneLen(best) {
				best = text
			}
		})
	}
	if best == "" {
		if article := cleaner.ArticleText(p.doc, p.url); p.qualifies(article) {
			best = article
		}
	}
	if best == "" {
		return StrategyResult{}
	}
	return found(models.MethodBestBlock, best, float64(cleaner.RuneLen(best)))
}
