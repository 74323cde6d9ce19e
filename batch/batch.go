// Package batch extracts descriptions for a list of search-result products,
// replacing failed primaries with backup products until the target number of
// successes is reached or the backups run out.
package batch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/surejsai/GenericProductFluxer/extractor"
	"github.com/surejsai/GenericProductFluxer/models"
	"golang.org/x/sync/errgroup"
)

// Defaults used when Run is given non-positive values.
const (
	DefaultTarget      = 5
	DefaultConcurrency = 5
)

// Extractor is the part of *extractor.Extractor a batch needs.
type Extractor interface {
	Extract(ctx context.Context, input string, opts extractor.ExtractOptions) *models.ProductDescriptionRecord
}

// Result is the outcome of a batch. Succeeded and Failed are ordered by
// product index.
type Result struct {
	Succeeded   []models.BatchItem
	Failed      []models.BatchItem
	BackupsUsed []int
}

// Status summarizes the result against the requested target.
func (r *Result) Status(target int) string {
	switch {
	case len(r.Succeeded) >= target:
		return "completed"
	case len(r.Succeeded) > 0:
		return "partial"
	default:
		return "failed"
	}
}

// Run extracts the first target products concurrently, then tries backups
// in input order, one wave per round, each wave sized to the number of
// successes still missing. Products without a link are dropped before
// indexing.
func Run(ctx context.Context, ex Extractor, products []models.BatchProduct, target, concurrency int) *Result {
	if target <= 0 {
		target = DefaultTarget
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	valid := make([]models.BatchProduct, 0, len(products))
	for _, p := range products {
		p.Link = strings.TrimSpace(p.Link)
		if p.Link != "" {
			valid = append(valid, p)
		}
	}

	res := &Result{}
	next := min(target, len(valid))
	slog.Info("batch extraction started",
		"primaries", next,
		"backups", len(valid)-next,
		"target", target,
	)
	res.add(runWave(ctx, ex, valid, 0, next, concurrency, false))

	for len(res.Succeeded) < target && next < len(valid) && ctx.Err() == nil {
		n := min(target-len(res.Succeeded), len(valid)-next)
		wave := runWave(ctx, ex, valid, next, next+n, concurrency, true)
		for _, item := range wave {
			if item.Success {
				res.BackupsUsed = append(res.BackupsUsed, item.Index)
			}
		}
		res.add(wave)
		next += n
	}

	slog.Info("batch extraction finished",
		"succeeded", len(res.Succeeded),
		"failed", len(res.Failed),
		"backups_used", len(res.BackupsUsed),
	)
	return res
}

func (r *Result) add(items []models.BatchItem) {
	for _, item := range items {
		if item.Success {
			r.Succeeded = append(r.Succeeded, item)
		} else {
			r.Failed = append(r.Failed, item)
		}
	}
}

// runWave extracts products[lo:hi] with at most limit in flight. Items come
// back in index order.
func runWave(ctx context.Context, ex Extractor, products []models.BatchProduct, lo, hi, limit int, backup bool) []models.BatchItem {
	items := make([]models.BatchItem, hi-lo)
	var g errgroup.Group
	g.SetLimit(limit)
	for i := lo; i < hi; i++ {
		g.Go(func() error {
			items[i-lo] = extractOne(ctx, ex, i, products[i], backup)
			return nil
		})
	}
	_ = g.Wait()
	return items
}

func extractOne(ctx context.Context, ex Extractor, index int, p models.BatchProduct, backup bool) models.BatchItem {
	record := ex.Extract(ctx, p.Link, extractor.ExtractOptions{})
	item := models.BatchItem{
		Index:    index,
		Title:    p.Title,
		Price:    p.Price,
		Source:   p.Source,
		IsBackup: backup,
		Success:  record.HasDescription(),
		Record:   record,
	}
	if !item.Success {
		item.Error = failureReason(record)
		slog.Warn("batch product failed", "url", p.Link, "backup", backup, "reason", item.Error)
	}
	return item
}

func failureReason(r *models.ProductDescriptionRecord) string {
	switch r.ExtractionMethod {
	case models.MethodFetchFail:
		return "page could not be fetched"
	case models.MethodBlocked:
		return "page blocked by an anti-bot challenge"
	default:
		return "no product description found"
	}
}
