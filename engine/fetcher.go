package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/surejsai/GenericProductFluxer/models"
)

// FetchResult is the outcome of Fetcher.Fetch. It is never mutated after
// it is returned.
type FetchResult struct {
	HTML        string
	StatusCode  int
	IsChallenge bool // still a challenge page after every allowed attempt
	Rendered    bool
	Attempts    int
}

// renderLearner is implemented by engines that can remember hosts needing
// rendering.
type renderLearner interface {
	LearnRender(rawURL string)
}

// Fetcher retrieves product pages and applies the challenge policy: a page
// that looks like an anti-bot challenge is fetched exactly once more with
// rendering forced, when enabled and the first attempt was not rendered.
type Fetcher struct {
	engine Engine
	cfg    models.ExtractionConfig
}

// NewFetcher creates a Fetcher over the given engine.
func NewFetcher(e Engine, cfg models.ExtractionConfig) *Fetcher {
	return &Fetcher{engine: e, cfg: cfg.Normalize()}
}

// WithConfig returns a Fetcher over the same engine with other settings.
func (f *Fetcher) WithConfig(cfg models.ExtractionConfig) *Fetcher {
	return NewFetcher(f.engine, cfg)
}

// Fetch returns the page markup for rawURL. A non-nil error is always a
// *models.ExtractError with code FETCH_FAILED and is terminal. A result with
// IsChallenge set means the page stayed blocked.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	first, err := f.attempt(ctx, rawURL, f.cfg.RenderJS)
	if err != nil {
		return nil, err
	}
	first.Attempts = 1
	if !first.IsChallenge {
		return first, nil
	}

	slog.Warn("challenge page detected", "url", rawURL, "rendered", first.Rendered)
	if !f.cfg.AutoRetryWithRender || first.Rendered {
		return first, nil
	}

	slog.Info("retrying with rendering", "url", rawURL)
	retry, err := f.attempt(ctx, rawURL, true)
	if err != nil {
		slog.Warn("retry with rendering failed", "url", rawURL, "error", err)
		first.Attempts = 2
		return first, nil
	}
	retry.Attempts = 2
	if retry.IsChallenge {
		slog.Warn("challenge persisted after rendering", "url", rawURL)
		return retry, nil
	}

	slog.Info("retry with rendering succeeded", "url", rawURL)
	if l, ok := f.engine.(renderLearner); ok {
		l.LearnRender(rawURL)
	}
	return retry, nil
}

// attempt performs a single fetch under its own timeout.
func (f *Fetcher) attempt(ctx context.Context, rawURL string, render bool) (*FetchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	resp, err := f.engine.Fetch(ctx, &FetchRequest{
		URL:        rawURL,
		DeviceType: f.cfg.DeviceType,
		Render:     render,
		MaxCost:    f.cfg.MaxCost,
		Timeout:    f.cfg.Timeout,
	})
	if err != nil {
		slog.Error("fetch failed", "url", rawURL, "engine", f.engine.Name(), "error", err)
		return nil, models.NewExtractError(models.ErrCodeFetchFailed, "fetch failed", err)
	}
	if !resp.OK() {
		return nil, models.NewExtractError(models.ErrCodeFetchFailed,
			fmt.Sprintf("unusable response (status %d, %d bytes)", resp.StatusCode, len(resp.Body)), nil)
	}

	markup := Unwrap(resp.Body)
	if strings.TrimSpace(markup) == "" {
		return nil, models.NewExtractError(models.ErrCodeFetchFailed, "empty body", nil)
	}

	slog.Debug("fetched page",
		"url", rawURL,
		"engine", resp.EngineName,
		"status", resp.StatusCode,
		"rendered", resp.Rendered,
		"title", sniffTitle(markup),
	)

	return &FetchResult{
		HTML:        markup,
		StatusCode:  resp.StatusCode,
		IsChallenge: LooksLikeChallenge(markup),
		Rendered:    resp.Rendered,
	}, nil
}
