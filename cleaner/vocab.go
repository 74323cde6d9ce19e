package cleaner

import "strings"

// excludeSectionPatterns are class/id substrings of multi-product regions.
var excludeSectionPatterns = []string{
	"related", "similar", "recommend", "also-bought", "also-viewed", "you-may-like",
	"customers-also", "frequently-bought", "compare", "alternatives", "other-products",
	"more-products", "product-list", "product-grid", "product-carousel", "product-slider",
	"carousel", "cross-sell", "upsell", "bundle", "accessories", "suggestions", "popular",
	"trending", "best-seller", "new-arrival", "featured-products", "shop-more",
	"browse-more", "explore-more", "recently-viewed", "viewed-products",
}

// relatedHeadingPatterns are heading phrases that introduce multi-product regions.
var relatedHeadingPatterns = []string{
	"related products", "similar products", "you may also like", "customers also bought",
	"frequently bought together", "compare similar", "other customers", "more from",
	"shop similar", "recommended for you", "people also viewed", "similar items",
	"complete the look", "goes well with", "pair it with", "shop the collection",
	"more to explore", "recently viewed", "your browsing history", "inspired by",
}

// chromePatterns are class substrings of page chrome (navigation, footers...).
var chromePatterns = []string{
	"nav", "footer", "header", "breadcrumb", "menu", "sidebar",
}

// cardPatterns are class substrings of product tiles inside a listing.
var cardPatterns = []string{"product", "card", "item", "tile"}

// mainAreaPatterns mark a container as the primary product area.
var mainAreaPatterns = []string{"main", "primary"}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// IsExcludedClass reports whether a lowercased class/id string names a
// related, recommended or otherwise multi-product region.
func IsExcludedClass(classID string) bool {
	return containsAny(classID, excludeSectionPatterns)
}

// IsRelatedHeading reports whether normalized heading text introduces a
// related-products region.
func IsRelatedHeading(label string) bool {
	return containsAny(label, relatedHeadingPatterns)
}

// IsChromeClass reports whether a lowercased class string names navigation,
// header, footer or sidebar chrome.
func IsChromeClass(class string) bool {
	return containsAny(class, chromePatterns)
}
