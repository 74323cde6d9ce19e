package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/surejsai/GenericProductFluxer/batch"
	"github.com/surejsai/GenericProductFluxer/config"
	"github.com/surejsai/GenericProductFluxer/models"
)

// Batch returns a handler for POST /api/v1/extract/batch.
//
// The first target_count products are primaries; the rest replace failed
// primaries in order. The call blocks until the batch is settled.
func Batch(ex batch.Extractor, cfg config.BatchConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.BatchResponse{
				Status: "failed",
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		if req.TargetCount == 0 {
			req.TargetCount = cfg.TargetCount
		}
		req.Defaults()

		res := batch.Run(c.Request.Context(), ex, req.Products, req.TargetCount, cfg.Concurrency)
		if len(res.Succeeded)+len(res.Failed) == 0 {
			c.JSON(http.StatusBadRequest, models.BatchResponse{
				Status:      "failed",
				TargetCount: req.TargetCount,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "no products with a link provided",
				},
			})
			return
		}

		c.JSON(http.StatusOK, models.BatchResponse{
			Status:      res.Status(req.TargetCount),
			TargetCount: req.TargetCount,
			Results:     nonNil(res.Succeeded),
			Failed:      nonNil(res.Failed),
			BackupsUsed: nonNil(res.BackupsUsed),
			Timing:      models.TimingInfo{TotalMs: time.Since(start).Milliseconds()},
		})
	}
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
