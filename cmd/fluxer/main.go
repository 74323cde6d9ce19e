package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/surejsai/GenericProductFluxer/api"
	"github.com/surejsai/GenericProductFluxer/config"
	"github.com/surejsai/GenericProductFluxer/engine"
	"github.com/surejsai/GenericProductFluxer/extractor"
)

func main() {
	// ── 1. Configuration and logging ────────────────────────────────
	cfg := config.Load()
	initLogger(cfg.Log)
	slog.Info("fluxer starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"backend", cfg.Fetch.Backend,
	)

	// ── 2. Fetch engine ─────────────────────────────────────────────
	eng, closeEngine := newEngine(cfg)
	defer closeEngine()

	// ── 3. Extractor ────────────────────────────────────────────────
	excfg := cfg.Extraction()
	ex := extractor.New(excfg, engine.NewFetcher(eng, excfg))

	// ── 4. HTTP server ──────────────────────────────────────────────
	router := api.NewRouter(ex, cfg, eng.Name(), time.Now())
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 5. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}
	slog.Info("fluxer stopped")
}

// newEngine builds the configured fetch backend and its cleanup.
//
// proxy:  every fetch goes through the scraping proxy, which renders on
// request.
// direct: utls HTTP for plain fetches, a lazily launched headless browser
// for rendered ones, plus a memory of hosts that needed rendering.
func newEngine(cfg *config.Config) (engine.Engine, func()) {
	if cfg.Fetch.Backend == config.BackendProxy {
		if cfg.Fetch.ScraperAPIKey != "" {
			return engine.NewProxyEngine(cfg.Fetch.ScraperEndpoint, cfg.Fetch.ScraperAPIKey, nil), func() {}
		}
		slog.Warn("proxy backend selected without SCRAPER_API_KEY, using direct fetching")
	}

	browser := engine.NewBrowserEngine(cfg.Browser)
	memory := engine.NewRenderMemory(cfg.Browser.RenderMemoryTTL)
	routed := engine.NewRoutedEngine(engine.NewHTTPEngine(), browser, memory)
	return routed, func() {
		memory.Stop()
		browser.Close()
	}
}

// initLogger configures slog from LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Format == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
