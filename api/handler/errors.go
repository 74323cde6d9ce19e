package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/surejsai/GenericProductFluxer/models"
)

// respondError writes a structured error response with the status matching
// the error code.
func respondError(c *gin.Context, err error, start time.Time) {
	var extractErr *models.ExtractError
	if !errors.As(err, &extractErr) {
		extractErr = models.NewExtractError(models.ErrCodeInternal, err.Error(), err)
	}
	c.JSON(mapErrorToStatus(extractErr), models.ExtractResponse{
		Success: false,
		Error:   extractErr.ToDetail(),
		Timing:  models.TimingInfo{TotalMs: time.Since(start).Milliseconds()},
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ExtractError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case models.ErrCodeFetchFailed, models.ErrCodeBlocked:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
