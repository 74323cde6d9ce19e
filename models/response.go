package models

// ExtractResponse is the response for POST /api/v1/extract.
type ExtractResponse struct {
	// Success is true when the call completed, even if no description was found.
	Success bool `json:"success"`

	// Data is the extraction record.
	Data *ProductDescriptionRecord `json:"data,omitempty"`

	// OGMetadata contains Open Graph meta tags from the page.
	OGMetadata *OGMetadata `json:"og_metadata,omitempty"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// OGMetadata contains Open Graph protocol meta tags.
type OGMetadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Type        string `json:"type,omitempty"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	TotalMs int64 `json:"total_ms"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Engine  string `json:"engine"`
	Version string `json:"version"`
}
