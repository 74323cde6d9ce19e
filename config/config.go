package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/surejsai/GenericProductFluxer/models"
)

// Fetch backends.
const (
	BackendProxy  = "proxy"
	BackendDirect = "direct"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Fetch     FetchConfig
	Browser   BrowserConfig
	Extract   ExtractConfig
	Batch     BatchConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 5000
	Mode string // "debug", "release", "test"; default: "release"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// FetchConfig controls how product pages are retrieved.
type FetchConfig struct {
	// Backend is "proxy" (scraping proxy) or "direct" (utls HTTP + headless
	// browser). Defaults to "proxy" when a scraper key is configured.
	Backend string

	// ScraperAPIKey authenticates against the scraping proxy.
	ScraperAPIKey string

	// ScraperEndpoint is the scraping proxy base URL.
	ScraperEndpoint string // default: "https://api.scraperapi.com/"

	// DeviceType is forwarded to the proxy.
	DeviceType string // default: "desktop"

	// Timeout bounds each fetch attempt.
	Timeout time.Duration // default: 120s

	// MaxCost is the proxy cost ceiling per request.
	MaxCost string // default: "10"

	// RenderJS forces rendering on the first attempt.
	RenderJS bool // default: false

	// AutoRetryWithRender enables the single challenge-triggered re-fetch.
	AutoRetryWithRender bool // default: true
}

// BrowserConfig controls the headless browser used by the direct backend.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Stealth injects anti-detection scripts before navigation.
	Stealth bool // default: true

	// MaxPages caps concurrently open tabs.
	MaxPages int // default: 4

	// RenderMemoryTTL is how long a host that needed rendering keeps being
	// fetched with the browser first.
	RenderMemoryTTL time.Duration // default: 6h
}

// ExtractConfig controls the extraction cascade.
type ExtractConfig struct {
	MinChars           int     // default: 50
	MaxChars           int     // default: 2000
	MetaMinChars       int     // default: 50
	RelevanceThreshold float64 // default: 0.3
	SemanticThreshold  float64 // default: 0.3
}

// BatchConfig controls batch extraction.
type BatchConfig struct {
	// Concurrency caps in-flight extractions per batch.
	Concurrency int // default: 5

	// TargetCount is the default number of successes wanted.
	TargetCount int // default: 5
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	scraperKey := os.Getenv("SCRAPER_API_KEY")
	defaultBackend := BackendDirect
	if scraperKey != "" {
		defaultBackend = BackendProxy
	}

	return &Config{
		Server: ServerConfig{
			Host: envOr("FLUXER_HOST", "0.0.0.0"),
			Port: envIntOr("FLUXER_PORT", 5000),
			Mode: envOr("FLUXER_MODE", "release"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("FLUXER_AUTH_ENABLED", true),
			APIKeys: envSliceOr("FLUXER_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("FLUXER_RATE_RPS", 5.0),
			Burst:             envIntOr("FLUXER_RATE_BURST", 10),
		},
		Log: LogConfig{
			Level:  envOr("FLUXER_LOG_LEVEL", "info"),
			Format: envOr("FLUXER_LOG_FORMAT", "json"),
		},
		Fetch: FetchConfig{
			Backend:             envOr("FLUXER_FETCH_BACKEND", defaultBackend),
			ScraperAPIKey:       scraperKey,
			ScraperEndpoint:     envOr("SCRAPER_API_ENDPOINT", "https://api.scraperapi.com/"),
			DeviceType:          envOr("FLUXER_DEVICE_TYPE", "desktop"),
			Timeout:             envDurationOr("FLUXER_FETCH_TIMEOUT", 120*time.Second),
			MaxCost:             envOr("FLUXER_MAX_COST", "10"),
			RenderJS:            envBoolOr("FLUXER_RENDER_JS", false),
			AutoRetryWithRender: envBoolOr("FLUXER_AUTO_RETRY_RENDER", true),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("FLUXER_HEADLESS", true),
			NoSandbox:  envBoolOr("FLUXER_NO_SANDBOX", false),
			BrowserBin: os.Getenv("FLUXER_BROWSER_BIN"),
			Stealth:    envBoolOr("FLUXER_STEALTH", true),
			MaxPages:   envIntOr("FLUXER_BROWSER_MAX_PAGES", 4),

			RenderMemoryTTL: envDurationOr("FLUXER_RENDER_MEMORY_TTL", 6*time.Hour),
		},
		Extract: ExtractConfig{
			MinChars:           envIntOr("FLUXER_MIN_CHARS", 50),
			MaxChars:           envIntOr("FLUXER_MAX_CHARS", 2000),
			MetaMinChars:       envIntOr("FLUXER_META_MIN_CHARS", 50),
			RelevanceThreshold: envFloatOr("FLUXER_RELEVANCE_THRESHOLD", 0.3),
			SemanticThreshold:  envFloatOr("FLUXER_SEMANTIC_THRESHOLD", 0.3),
		},
		Batch: BatchConfig{
			Concurrency: envIntOr("FLUXER_BATCH_CONCURRENCY", 5),
			TargetCount: envIntOr("FLUXER_BATCH_TARGET", 5),
		},
	}
}

// Extraction derives the immutable extraction settings shared by every
// extractor built from this configuration.
func (c *Config) Extraction() models.ExtractionConfig {
	return models.ExtractionConfig{
		MinChars:            c.Extract.MinChars,
		MaxChars:            c.Extract.MaxChars,
		MetaMinChars:        c.Extract.MetaMinChars,
		DeviceType:          c.Fetch.DeviceType,
		Timeout:             c.Fetch.Timeout,
		MaxCost:             c.Fetch.MaxCost,
		RenderJS:            c.Fetch.RenderJS,
		AutoRetryWithRender: c.Fetch.AutoRetryWithRender,
		RelevanceThreshold:  c.Extract.RelevanceThreshold,
		SemanticThreshold:   c.Extract.SemanticThreshold,
	}.Normalize()
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		// Bare integers are seconds.
		if secs, err := strconv.Atoi(v); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
