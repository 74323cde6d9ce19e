package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/surejsai/GenericProductFluxer/models"
)

// scriptStrategy reads product objects assigned in inline scripts. Only
// scripts that survived pruning are searched, not the raw markup, so data
// inside a removed recommendations block is never read.
func scriptStrategy(p *page) StrategyResult {
	var text string
	p.doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if _, external := s.Attr("src"); external {
			return true
		}
		if t, _ := s.Attr("type"); strings.Contains(strings.ToLower(t), "ld+json") {
			return true
		}
		text = inlineDescription(s.Text(), p.cfg.MinChars)
		return text == ""
	})
	if text == "" {
		return StrategyResult{}
	}
	return found(models.MethodJavaScript, text, 0)
}
