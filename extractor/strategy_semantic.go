package extractor

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/surejsai/GenericProductFluxer/models"
)

// Label scoring weights.
const (
	exactMatch      = 1.0
	partialMatch    = 0.7
	overlapMatch    = 0.5
	containerBonus  = 0.15
	minOverlap      = 0.5
	maxLabelLength  = 150
	maxLengthBonus  = 0.3
	lengthBonusSpan = 3000.0
	titleWordBonus  = 0.05
	maxTitleBonus   = 0.2
)

// Structured container scoring.
const (
	structuredBase       = 0.75
	structuredShapeBonus = 0.1
	structuredKeyword    = 0.15
)

// Nearby-content thresholds.
const (
	richParentChars   = 200
	maxSiblings       = 6
	minSiblingChars   = 20
	minSiblingsChars  = 40
	looseParentChars  = 60
	minStructuredKids = 3
	minStructuredBold = 2
)

// descriptionKeywords groups label vocabulary by the section it announces.
var descriptionKeywords = [][]string{
	{"description", "desc", "describe", "about", "what is"},
	{"details", "detail", "information", "info", "learn more"},
	{"overview", "summary", "introduction", "intro"},
	{"features", "feature", "key features", "highlights", "main features", "product features"},
	{"specifications", "specs", "specification", "technical", "tech specs"},
	{"product", "item", "article"},
}

var containerWords = []string{"product", "item", "details", "description"}

// labelTags are scanned in this order for section labels.
var labelTags = []string{"h1", "h2", "h3", "h4", "h5", "h6", "summary", "button", "span", "div", "label", "strong", "p"}

var structuredContainers = cleaner.MustGroup("div", "section", "article")

// labelScore rates how strongly a normalized label announces a description
// section, capped at 1.
func labelScore(label string) float64 {
	best := 0.0
	for _, group := range descriptionKeywords {
		for _, kw := range group {
			switch {
			case kw == label:
				best = math.Max(best, exactMatch)
			case strings.Contains(label, kw):
				best = math.Max(best, partialMatch)
			default:
				if o := wordOverlap(label, kw); o >= minOverlap {
					best = math.Max(best, overlapMatch*o)
				}
			}
		}
	}
	for _, w := range containerWords {
		if strings.Contains(label, w) {
			best += containerBonus
		}
	}
	return math.Min(best, 1.0)
}

// wordOverlap is the Jaccard index of the word sets of a and b.
func wordOverlap(a, b string) float64 {
	wa, wb := wordSet(a), wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// nearbyContent collects the text a label introduces: a rich parent, then
// following siblings, then a shorter parent, then the next element.
func nearbyContent(doc *goquery.Document, el *goquery.Selection) string {
	parent := el.Parent()
	hasParent := parent.Length() > 0
	if hasParent {
		if t := cleaner.RichText(parent); cleaner.RuneLen(t) >= richParentChars {
			return t
		}
	}

	var texts []string
	el.NextAll().EachWithBreak(func(i int, sib *goquery.Selection) bool {
		if t := cleaner.RichText(sib); cleaner.RuneLen(t) >= minSiblingChars {
			texts = append(texts, t)
		}
		return i+1 < maxSiblings
	})
	if combined := strings.Join(texts, " "); cleaner.RuneLen(combined) >= minSiblingsChars {
		return combined
	}

	if hasParent {
		if t := cleaner.RichText(parent); cleaner.RuneLen(t) >= looseParentChars {
			return t
		}
	}

	if next := cleaner.NextElement(el.Nodes[0]); next != nil {
		return cleaner.RichText(doc.FindNodes(next))
	}
	return ""
}

// titleBonus rewards content mentioning the longer words of the title.
func titleBonus(content, title string) float64 {
	if title == "" {
		return 0
	}
	body := strings.ToLower(content)
	matches := 0
	for w := range wordSet(strings.ToLower(title)) {
		if len(w) > 3 && strings.Contains(body, w) {
			matches++
		}
	}
	return math.Min(maxTitleBonus, float64(matches)*titleWordBonus)
}

func semanticStrategy(p *page) StrategyResult {
	var (
		bestText  string
		bestScore float64
	)
	consider := func(text string, score float64) {
		if bestText == "" || score > bestScore {
			bestText, bestScore = text, score
		}
	}

	for _, tag := range labelTags {
		p.doc.Find(tag).Each(func(_ int, el *goquery.Selection) {
			label := cleaner.NormalizeLabel(cleaner.TextOf(el))
			if label == "" || cleaner.RuneLen(label) > maxLabelLength || cleaner.IsRelatedHeading(label) {
				return
			}
			score := labelScore(label)
			if score < p.cfg.SemanticThreshold {
				return
			}
			content := nearbyContent(p.doc, el)
			if !p.qualifies(content) {
				return
			}
			lengthBonus := math.Min(maxLengthBonus, float64(cleaner.RuneLen(content))/lengthBonusSpan)
			consider(content, score+lengthBonus+titleBonus(content, p.title))
		})
	}

	p.doc.FindMatcher(structuredContainers).Each(func(_ int, c *goquery.Selection) {
		class := cleaner.ClassOf(c)
		if cleaner.IsChromeClass(class) || cleaner.IsExcludedClass(class) {
			return
		}
		kids := c.ChildrenFiltered("p, li").Length()
		if kids < minStructuredKids && c.Find("strong").Length() < minStructuredBold {
			return
		}
		content := cleaner.RichText(c)
		if !p.qualifies(content) {
			return
		}
		score := structuredBase
		if kids >= minStructuredKids {
			score += structuredShapeBonus
		}
		if strings.Contains(strings.ToLower(content), "features") {
			score += structuredKeyword
		}
		consider(content, score)
	})

	if bestText == "" {
		return StrategyResult{}
	}
	return found(models.MethodSemantic, bestText, bestScore)
}
