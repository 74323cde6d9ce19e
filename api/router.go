// Package api exposes the extractor over HTTP.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/surejsai/GenericProductFluxer/api/handler"
	"github.com/surejsai/GenericProductFluxer/api/middleware"
	"github.com/surejsai/GenericProductFluxer/config"
	"github.com/surejsai/GenericProductFluxer/extractor"
)

// NewRouter creates the Gin engine.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health sits outside auth so probes always reach it.
func NewRouter(ex *extractor.Extractor, cfg *config.Config, engineName string, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health(engineName, startTime))

	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/extract", handler.Extract(ex))
	protected.POST("/extract/batch", handler.Batch(ex, cfg.Batch))

	return r
}
