package engine

import (
	"context"
	"net/http"
	"time"
)

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "proxy", "http", "browser").
	Name() string

	// Fetch retrieves the page for the given request. A non-nil error means
	// the engine could not produce a response at all; HTTP-level failures
	// are reported through Response.StatusCode.
	Fetch(ctx context.Context, req *FetchRequest) (*Response, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL        string
	DeviceType string // "desktop" or "mobile"
	Render     bool   // execute JavaScript before returning markup
	MaxCost    string // proxy cost ceiling, ignored by direct engines
	Timeout    time.Duration
}

// Response is the raw output of one engine fetch.
type Response struct {
	Body       string
	StatusCode int
	Rendered   bool
	EngineName string
}

// OK reports whether the response carries a usable body.
func (r *Response) OK() bool {
	if r == nil || r.Body == "" {
		return false
	}
	// Browsers cannot always report the navigation status.
	if r.StatusCode == 0 {
		return r.Rendered
	}
	return r.StatusCode == http.StatusOK
}
