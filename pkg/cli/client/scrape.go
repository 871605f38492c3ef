package client

import (
	"context"
	"net/http"
	"strings"

	"reels-dash-go/pkg/models"
)

// ScrapeResponse is the answer of the legacy single-profile endpoint
type ScrapeResponse struct {
	Success        bool           `json:"success"`
	Data           *models.Result `json:"data,omitempty"`
	ExtractionMode string         `json:"extractionMode,omitempty"`
	Timestamp      string         `json:"timestamp,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// ScrapeProfile calls the legacy synchronous scrape endpoint
func (c *Client) ScrapeProfile(ctx context.Context, params models.ScrapeParams) (*ScrapeResponse, error) {
	const op = "scrape profile"
	params.ProfileURL = strings.TrimSpace(params.ProfileURL)
	if params.ProfileURL == "" {
		return nil, newValidationError(op, "profile URL is required")
	}

	var resp ScrapeResponse
	if err := c.doJSONRequest(ctx, op, http.MethodPost, "/api/scrape", params, "data", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScrapeBatch calls the legacy synchronous batch endpoint
func (c *Client) ScrapeBatch(ctx context.Context, params models.BatchScrapeParams) (*models.BatchScrapeResponse, error) {
	const op = "scrape batch"
	urls := params.ProfileURLs[:0:0]
	for _, u := range params.ProfileURLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, newValidationError(op, "at least one profile URL is required")
	}
	params.ProfileURLs = urls

	var resp models.BatchScrapeResponse
	if err := c.doJSONRequest(ctx, op, http.MethodPost, "/api/scrape/batch", params, "results", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
