// Package extractor finds the description of the main product on a product
// page. Markup is pruned of related-product regions, then an ordered cascade
// of strategies runs until one yields a long enough description that is
// about the page's product.
package extractor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/surejsai/GenericProductFluxer/engine"
	"github.com/surejsai/GenericProductFluxer/models"
)

// Extractor is immutable; one instance may serve concurrent calls.
type Extractor struct {
	cfg     models.ExtractionConfig
	fetcher *engine.Fetcher
}

// ExtractOptions qualifies the input of Extract.
type ExtractOptions struct {
	// IsHTML forces the input to be treated as markup even when it starts
	// with a URL prefix.
	IsHTML bool

	// URL is reported in the record when the input is markup.
	URL string
}

// Result is a record plus page details the hosting API reports alongside it.
type Result struct {
	Record    *models.ProductDescriptionRecord
	Title     string
	OpenGraph *cleaner.OpenGraph
}

// New creates an Extractor. fetcher may be nil, in which case URL inputs
// yield a record carrying only the URL.
func New(cfg models.ExtractionConfig, fetcher *engine.Fetcher) *Extractor {
	return &Extractor{cfg: cfg.Normalize(), fetcher: fetcher}
}

// Config returns the extractor's settings.
func (x *Extractor) Config() models.ExtractionConfig { return x.cfg }

// WithConfig returns an Extractor sharing the fetch engine with other
// settings.
func (x *Extractor) WithConfig(cfg models.ExtractionConfig) *Extractor {
	var f *engine.Fetcher
	if x.fetcher != nil {
		f = x.fetcher.WithConfig(cfg)
	}
	return New(cfg, f)
}

// Extract returns the product description record for a URL or raw markup.
// It never fails: every problem degrades to a record with empty fields.
func (x *Extractor) Extract(ctx context.Context, input string, opts ExtractOptions) *models.ProductDescriptionRecord {
	return x.ExtractDetailed(ctx, input, opts).Record
}

// ExtractHTML runs the cascade over markup that was fetched elsewhere.
func (x *Extractor) ExtractHTML(ctx context.Context, markup, pageURL string) *models.ProductDescriptionRecord {
	return x.ExtractDetailed(ctx, markup, ExtractOptions{IsHTML: true, URL: pageURL}).Record
}

// ExtractDetailed is Extract plus the resolved title and Open Graph data.
func (x *Extractor) ExtractDetailed(ctx context.Context, input string, opts ExtractOptions) *Result {
	in := strings.TrimSpace(input)
	if in == "" {
		return &Result{Record: &models.ProductDescriptionRecord{}}
	}
	if opts.IsHTML || !IsURL(in) {
		return x.fromMarkup(in, opts.URL)
	}

	pageURL := NormalizeURL(in)
	if x.fetcher == nil {
		slog.Error("no fetch backend configured, cannot fetch URLs", "url", pageURL)
		return &Result{Record: &models.ProductDescriptionRecord{URL: pageURL}}
	}

	res, err := x.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return &Result{Record: &models.ProductDescriptionRecord{
			URL:              pageURL,
			ExtractionMethod: models.MethodFetchFail,
		}}
	}
	if res.IsChallenge {
		return &Result{Record: &models.ProductDescriptionRecord{
			URL:              pageURL,
			ExtractionMethod: models.MethodBlocked,
		}}
	}
	return x.fromMarkup(res.HTML, pageURL)
}

func (x *Extractor) fromMarkup(markup, pageURL string) *Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		slog.Warn("unparseable markup", "url", pageURL, "error", err)
		return &Result{Record: &models.ProductDescriptionRecord{URL: pageURL}}
	}

	pruned := cleaner.Prune(doc)
	if pruned.Removed > 0 {
		slog.Debug("pruned related product sections", "url", pageURL, "removed", pruned.Removed)
	}

	p := &page{
		doc:   pruned.Doc,
		title: cleaner.ResolveTitle(pruned.Doc),
		url:   pageURL,
		cfg:   x.cfg,
	}
	record := &models.ProductDescriptionRecord{
		URL:             pageURL,
		MetaTitle:       cleaner.MetaTitle(pruned.Doc),
		MetaDescription: cleaner.MetaDescription(pruned.Doc),
	}

	if c := runCascade(p); c != nil {
		record.ProductDescription = cleaner.Clip(c.Text, x.cfg.MaxChars)
		record.ExtractionMethod = c.Method
		record.ConfidenceScore = Confidence(c.Method, c.Text)
	} else {
		slog.Debug("no description found", "url", pageURL)
	}

	return &Result{
		Record:    record,
		Title:     p.title,
		OpenGraph: cleaner.ExtractOpenGraph(doc),
	}
}

// IsURL reports whether input should be fetched rather than parsed.
func IsURL(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "www.")
}

// NormalizeURL adds an https scheme to bare "www." inputs.
func NormalizeURL(input string) string {
	s := strings.TrimSpace(input)
	if strings.HasPrefix(strings.ToLower(s), "www.") {
		return "https://" + s
	}
	return s
}
