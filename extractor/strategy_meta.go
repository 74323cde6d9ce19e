package extractor

import (
	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/surejsai/GenericProductFluxer/models"
)

// metaStrategy falls back to the page's meta description when it clears
// its own, looser floor.
func metaStrategy(p *page) StrategyResult {
	desc := cleaner.MetaDescription(p.doc)
	if cleaner.RuneLen(desc) < p.cfg.MetaMinChars {
		return StrategyResult{}
	}
	return found(models.MethodMeta, desc, 0)
}
