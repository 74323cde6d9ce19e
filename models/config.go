package models

import "time"

// ExtractionConfig is the immutable per-extractor configuration.
type ExtractionConfig struct {
	// MinChars is the minimum normalized length a candidate must reach.
	MinChars int // default: 50

	// MaxChars is the clipping bound for the returned description.
	MaxChars int // default: 2000

	// MetaMinChars is the floor the meta-description strategy applies on
	// its own before the cascade length gate.
	MetaMinChars int // default: 50

	// DeviceType is forwarded to the scraping proxy ("desktop" or "mobile").
	DeviceType string // default: "desktop"

	// Timeout bounds a single fetch attempt.
	Timeout time.Duration // default: 120s

	// MaxCost is the per-request cost ceiling for the scraping proxy.
	// Empty, "0", "none" and "unlimited" disable the ceiling.
	MaxCost string // default: "10"

	// RenderJS forces rendering on the first attempt.
	RenderJS bool // default: false

	// AutoRetryWithRender re-fetches once with rendering forced when the
	// first response looks like a challenge page.
	AutoRetryWithRender bool // default: true

	// RelevanceThreshold is the fraction of significant title tokens a
	// candidate must contain.
	RelevanceThreshold float64 // default: 0.3

	// SemanticThreshold is the minimum label score for the semantic strategy.
	SemanticThreshold float64 // default: 0.3
}

// DefaultExtractionConfig returns the defaults used by the hosted service.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		MinChars:            50,
		MaxChars:            2000,
		MetaMinChars:        50,
		DeviceType:          "desktop",
		Timeout:             120 * time.Second,
		MaxCost:             "10",
		RenderJS:            false,
		AutoRetryWithRender: true,
		RelevanceThreshold:  0.3,
		SemanticThreshold:   0.3,
	}
}

// Normalize fills zero values with defaults and repairs inverted bounds.
func (c ExtractionConfig) Normalize() ExtractionConfig {
	def := DefaultExtractionConfig()
	if c.MinChars <= 0 {
		c.MinChars = def.MinChars
	}
	if c.MaxChars <= 0 {
		c.MaxChars = def.MaxChars
	}
	if c.MaxChars < c.MinChars {
		c.MaxChars = c.MinChars
	}
	if c.MetaMinChars <= 0 {
		c.MetaMinChars = def.MetaMinChars
	}
	if c.DeviceType == "" {
		c.DeviceType = def.DeviceType
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.RelevanceThreshold <= 0 || c.RelevanceThreshold > 1 {
		c.RelevanceThreshold = def.RelevanceThreshold
	}
	if c.SemanticThreshold <= 0 {
		c.SemanticThreshold = def.SemanticThreshold
	}
	return c
}
