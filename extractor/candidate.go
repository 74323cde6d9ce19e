package extractor

import (
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/surejsai/GenericProductFluxer/models"
)

// Candidate is a description proposed by one strategy. It lives only for
// the duration of one extraction call.
type Candidate struct {
	Text     string
	Method   string
	RawScore float64
}

// StrategyResult is what every strategy returns: a candidate, nothing, or
// an error describing why the strategy could not run.
type StrategyResult struct {
	Candidate *Candidate
	Err       error
}

func found(method, text string, score float64) StrategyResult {
	return StrategyResult{Candidate: &Candidate{Text: text, Method: method, RawScore: score}}
}

func failed(method string, err error) StrategyResult {
	return StrategyResult{Err: models.NewExtractError(models.ErrCodeStrategyFailed, method, err)}
}

// page is the call-local view every strategy reads. doc is the pruned copy.
type page struct {
	doc   *goquery.Document
	title string
	url   string
	cfg   models.ExtractionConfig
}

// relevant applies the title relevance check with the page's threshold.
func (p *page) relevant(text string) bool {
	return IsRelevant(text, p.title, p.cfg.RelevanceThreshold)
}

// qualifies reports whether text is long enough and about the page's product.
func (p *page) qualifies(text string) bool {
	return cleaner.RuneLen(text) >= p.cfg.MinChars && p.relevant(text)
}

type strategy struct {
	method string
	run    func(*page) StrategyResult
}

// cascade is evaluated top to bottom; the first acceptable candidate wins.
var cascade = []strategy{
	{models.MethodJSONLD, jsonLDStrategy},
	{models.MethodJavaScript, scriptStrategy},
	{models.MethodMainSection, mainSectionStrategy},
	{models.MethodSemantic, semanticStrategy},
	{models.MethodMeta, metaStrategy},
	{models.MethodBestBlock, bestBlockStrategy},
}

// runCascade returns the winning candidate, or nil when no strategy produced
// a long enough, relevant description.
func runCascade(p *page) *Candidate {
	for _, s := range cascade {
		res := runStrategy(s, p)
		if res.Err != nil {
			slog.Warn("extraction strategy failed", "method", s.method, "url", p.url, "error", res.Err)
			continue
		}
		c := res.Candidate
		if c == nil {
			continue
		}
		c.Text = cleaner.CleanText(c.Text)
		if cleaner.RuneLen(c.Text) < p.cfg.MinChars {
			slog.Debug("candidate too short", "method", s.method, "length", cleaner.RuneLen(c.Text))
			continue
		}
		if !p.relevant(c.Text) {
			slog.Debug("candidate not relevant to product", "method", s.method, "title", p.title)
			continue
		}
		slog.Debug("description found", "method", s.method, "url", p.url)
		return c
	}
	return nil
}

// runStrategy isolates a strategy so a panic inside it becomes a failed
// result instead of aborting the cascade.
func runStrategy(s strategy, p *page) (res StrategyResult) {
	defer func() {
		if r := recover(); r != nil {
			res = failed(s.method, fmt.Errorf("panic: %v", r))
		}
	}()
	return s.run(p)
}
