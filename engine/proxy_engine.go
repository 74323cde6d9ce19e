package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// costHeaders are logged at debug level after every proxy call.
var costHeaders = []string{"x-scraper-cost", "x-credit-limit-remaining", "x-credits-used"}

// ProxyEngine fetches pages through a scraping proxy that handles IP
// rotation and optional JavaScript rendering on its side.
type ProxyEngine struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewProxyEngine creates a ProxyEngine for the given endpoint and key.
// A nil client uses a default one; per-request deadlines come from ctx.
func NewProxyEngine(endpoint, apiKey string, client *http.Client) *ProxyEngine {
	if client == nil {
		client = &http.Client{}
	}
	return &ProxyEngine{endpoint: endpoint, apiKey: apiKey, client: client}
}

func (e *ProxyEngine) Name() string { return "proxy" }

func (e *ProxyEngine) Fetch(ctx context.Context, req *FetchRequest) (*Response, error) {
	reqURL, err := e.requestURL(req)
	if err != nil {
		return nil, err
	}

	slog.Debug("proxy fetch",
		"url", req.URL,
		"device", req.DeviceType,
		"render", req.Render,
		"max_cost", costOrUnlimited(req.MaxCost),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("proxy_engine: build request: %w", err)
	}
	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("proxy_engine: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("proxy_engine: read body: %w", err)
	}

	attrs := []any{"url", req.URL, "status", resp.StatusCode, "length", len(body)}
	for _, h := range costHeaders {
		if v := resp.Header.Get(h); v != "" {
			attrs = append(attrs, h, v)
		}
	}
	slog.Debug("proxy response", attrs...)

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		slog.Error("proxy fetch failed", "url", req.URL, "status", resp.StatusCode, "response", snippet)
	}

	return &Response{
		Body:       string(body),
		StatusCode: resp.StatusCode,
		Rendered:   req.Render,
		EngineName: e.Name(),
	}, nil
}

func (e *ProxyEngine) requestURL(req *FetchRequest) (string, error) {
	base, err := url.Parse(e.endpoint)
	if err != nil {
		return "", fmt.Errorf("proxy_engine: invalid endpoint: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", e.apiKey)
	params.Set("url", req.URL)
	params.Set("device_type", req.DeviceType)
	params.Set("render", fmt.Sprintf("%t", req.Render))
	if hasCostCeiling(req.MaxCost) {
		params.Set("max_cost", req.MaxCost)
	}
	base.RawQuery = params.Encode()
	return base.String(), nil
}

// hasCostCeiling reports whether maxCost limits spend at all.
func hasCostCeiling(maxCost string) bool {
	switch strings.ToLower(strings.TrimSpace(maxCost)) {
	case "", "0", "unlimited", "none":
		return false
	}
	return true
}

func costOrUnlimited(maxCost string) string {
	if hasCostCeiling(maxCost) {
		return maxCost
	}
	return "unlimited"
}
