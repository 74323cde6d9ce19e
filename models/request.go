package models

// ExtractRequest is the payload for POST /api/v1/extract.
// URL or HTML must be set; HTML wins when both are.
type ExtractRequest struct {
	// URL is the product page to fetch through the configured engine.
	URL string `json:"url,omitempty"`

	// HTML is pre-fetched markup. When set, no fetch is performed and URL
	// is only recorded on the result.
	HTML string `json:"html,omitempty"`

	// MinChars overrides the configured minimum description length.
	MinChars int `json:"min_chars,omitempty" binding:"omitempty,min=1,max=10000"`

	// MaxChars overrides the configured clipping bound.
	MaxChars int `json:"max_chars,omitempty" binding:"omitempty,min=1,max=50000"`

	// Render forces rendering on the first fetch attempt.
	Render bool `json:"render,omitempty"`
}

// BatchProduct is one search-result entry submitted for batch extraction.
type BatchProduct struct {
	Title  string `json:"title,omitempty"`
	Link   string `json:"link"`
	Price  string `json:"price,omitempty"`
	Source string `json:"source,omitempty"`
}

// BatchRequest is the payload for POST /api/v1/extract/batch.
type BatchRequest struct {
	// Products are tried in order: the first TargetCount are primaries,
	// the rest are backups used to replace failed primaries.
	Products []BatchProduct `json:"products" binding:"required,min=1,max=50"`

	// TargetCount is the number of successful extractions wanted. Default: 5.
	TargetCount int `json:"target_count,omitempty" binding:"omitempty,min=1,max=20"`
}

// Defaults applies default values to unset fields.
func (r *BatchRequest) Defaults() {
	if r.TargetCount == 0 {
		r.TargetCount = 5
	}
}
