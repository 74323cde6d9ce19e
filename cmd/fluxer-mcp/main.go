package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/surejsai/GenericProductFluxer/models"
)

func main() {
	apiURL := os.Getenv("FLUXER_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:5000"
	}
	apiKey := os.Getenv("FLUXER_API_KEY")

	s := server.NewMCPServer(
		"fluxer",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	extractTool := mcp.NewTool("extract_description",
		mcp.WithDescription("Extract the description of the main product on a product page. Related-product grids are ignored. Returns the description, its extraction method and a confidence score."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The product page URL"),
		),
		mcp.WithBoolean("render",
			mcp.Description("Render JavaScript on the first fetch attempt (slower, needed for client-rendered shops)"),
		),
		mcp.WithNumber("max_chars",
			mcp.Description("Clip the description to this many characters (default: 2000)"),
		),
	)
	s.AddTool(extractTool, handleExtract(apiURL, apiKey))

	batchTool := mcp.NewTool("extract_batch",
		mcp.WithDescription("Extract descriptions for a list of product pages. The first target_count links are primaries; later links are used as backups when a primary yields no description."),
		mcp.WithArray("links",
			mcp.Required(),
			mcp.Description("Product page URLs in priority order"),
			mcp.WithStringItems(),
		),
		mcp.WithNumber("target_count",
			mcp.Description("Number of successful extractions wanted (default: 5)"),
		),
	)
	s.AddTool(batchTool, handleBatch(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a JSON POST to the fluxer API and decodes the response.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(apiURL, "/")+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}

func handleExtract(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 5 * time.Minute}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		payload := models.ExtractRequest{
			URL:      url,
			Render:   request.GetBool("render", false),
			MaxChars: request.GetInt("max_chars", 0),
		}

		var resp models.ExtractResponse
		if err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/extract", payload, &resp); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !resp.Success || resp.Data == nil {
			return mcp.NewToolResultError(errorText(resp.Error, "extraction failed")), nil
		}
		return mcp.NewToolResultText(formatRecord(resp.Data)), nil
	}
}

func handleBatch(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 15 * time.Minute}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		links, err := request.RequireStringSlice("links")
		if err != nil {
			return mcp.NewToolResultError("links is required and must be an array of strings"), nil
		}
		payload := models.BatchRequest{TargetCount: request.GetInt("target_count", 0)}
		for _, l := range links {
			payload.Products = append(payload.Products, models.BatchProduct{Link: l})
		}

		var resp models.BatchResponse
		if err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/extract/batch", payload, &resp); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if resp.Error != nil {
			return mcp.NewToolResultError(errorText(resp.Error, "batch failed")), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Batch %s: %d/%d succeeded, %d failed, %d backups used\n\n",
			resp.Status, len(resp.Results), resp.TargetCount, len(resp.Failed), len(resp.BackupsUsed))
		for _, item := range resp.Results {
			fmt.Fprintf(&sb, "--- [%d] %s ---\n", item.Index+1, item.Record.URL)
			sb.WriteString(formatRecord(item.Record))
			sb.WriteString("\n\n")
		}
		for _, item := range resp.Failed {
			fmt.Fprintf(&sb, "--- [%d] FAILED %s: %s ---\n", item.Index+1, item.Record.URL, item.Error)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func formatRecord(r *models.ProductDescriptionRecord) string {
	var sb strings.Builder
	if r.MetaTitle != "" {
		fmt.Fprintf(&sb, "Title: %s\n", r.MetaTitle)
	}
	fmt.Fprintf(&sb, "Source: %s\n", r.URL)
	if r.ExtractionMethod != "" {
		fmt.Fprintf(&sb, "Method: %s (confidence %.2f)\n", r.ExtractionMethod, r.ConfidenceScore)
	}
	sb.WriteString("\n")
	if r.ProductDescription != "" {
		sb.WriteString(r.ProductDescription)
	} else {
		sb.WriteString("No product description found.")
	}
	return sb.String()
}

func errorText(e *models.ErrorDetail, fallback string) string {
	if e == nil {
		return fallback
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
