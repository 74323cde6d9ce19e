package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/surejsai/GenericProductFluxer/models"
)

// abort stops the chain with a structured error body.
func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ExtractResponse{
		Success: false,
		Error:   &models.ErrorDetail{Code: code, Message: message},
	})
}
