package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/surejsai/GenericProductFluxer/cleaner"
	"github.com/surejsai/GenericProductFluxer/extractor"
	"github.com/surejsai/GenericProductFluxer/models"
)

// Extract returns a handler for POST /api/v1/extract.
//
// The request carries either a URL to fetch or pre-fetched markup. Per-request
// min_chars, max_chars and render override the server settings for this call
// only. Pages that cannot be fetched or stay blocked still answer 200 with a
// record whose extraction_method says so.
func Extract(ex *extractor.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, models.NewExtractError(models.ErrCodeInvalidInput, err.Error(), err), start)
			return
		}
		req.URL = strings.TrimSpace(req.URL)
		if err := validateExtract(&req); err != nil {
			respondError(c, err, start)
			return
		}

		x := withOverrides(ex, &req)
		var res *extractor.Result
		if strings.TrimSpace(req.HTML) != "" {
			res = x.ExtractDetailed(c.Request.Context(), req.HTML, extractor.ExtractOptions{IsHTML: true, URL: req.URL})
		} else {
			res = x.ExtractDetailed(c.Request.Context(), req.URL, extractor.ExtractOptions{})
		}

		slog.Info("extraction complete",
			"url", res.Record.URL,
			"method", res.Record.ExtractionMethod,
			"confidence", res.Record.ConfidenceScore,
		)

		c.JSON(http.StatusOK, models.ExtractResponse{
			Success:    true,
			Data:       res.Record,
			OGMetadata: toOGMetadata(res.OpenGraph),
			Timing:     models.TimingInfo{TotalMs: time.Since(start).Milliseconds()},
		})
	}
}

func validateExtract(req *models.ExtractRequest) error {
	if strings.TrimSpace(req.HTML) != "" {
		return nil
	}
	if req.URL == "" {
		return models.NewExtractError(models.ErrCodeInvalidInput, "url or html is required", nil)
	}
	if !extractor.IsURL(req.URL) {
		return models.NewExtractError(models.ErrCodeInvalidInput, "url must start with http://, https:// or www.", nil)
	}
	return nil
}

// withOverrides returns ex, or a copy carrying the request's settings.
func withOverrides(ex *extractor.Extractor, req *models.ExtractRequest) *extractor.Extractor {
	if req.MinChars == 0 && req.MaxChars == 0 && !req.Render {
		return ex
	}
	cfg := ex.Config()
	if req.MinChars > 0 {
		cfg.MinChars = req.MinChars
	}
	if req.MaxChars > 0 {
		cfg.MaxChars = req.MaxChars
	}
	if req.Render {
		cfg.RenderJS = true
	}
	return ex.WithConfig(cfg)
}

func toOGMetadata(og *cleaner.OpenGraph) *models.OGMetadata {
	if og == nil {
		return nil
	}
	return &models.OGMetadata{
		Title:       og.Title,
		Description: og.Description,
		Image:       og.Image,
		Type:        og.Type,
	}
}
