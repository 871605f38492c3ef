package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"reels-dash-go/pkg/models"
)

// ExportFormat is the file format the export endpoint produces
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

// ParseExportFormat accepts "json" or "csv" in any case
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case ExportJSON:
		return ExportJSON, true
	case ExportCSV:
		return ExportCSV, true
	}
	return "", false
}

// GetResults lists per-profile results. Zero-valued filters are omitted.
func (c *Client) GetResults(ctx context.Context, params models.ListResultsParams) (*models.ResultList, error) {
	q := url.Values{}
	if params.JobID != "" {
		q.Set("jobId", params.JobID)
	}
	if params.ProfileURL != "" {
		q.Set("profileUrl", params.ProfileURL)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	var list models.ResultList
	if err := c.doGetRequest(ctx, "get results", "/api/results", q, "results", &list); err != nil {
		return nil, err
	}
	if list.Results == nil {
		list.Results = []models.Result{}
	}
	return &list, nil
}

// GetResult fetches one result by its identifier
func (c *Client) GetResult(ctx context.Context, id string) (*models.Result, error) {
	const op = "get result"
	if strings.TrimSpace(id) == "" {
		return nil, newValidationError(op, "result ID is required")
	}

	// A bare Result carries its own success and data fields, so the inline
	// check keys on profileUrl to tell it apart from a data envelope.
	var result models.Result
	if err := c.doGetRequest(ctx, op, "/api/results/"+pathEscape(id), nil, "profileUrl", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportResults downloads a job's results as an opaque file body.
func (c *Client) ExportResults(ctx context.Context, jobID string, format ExportFormat) ([]byte, error) {
	const op = "export results"
	if strings.TrimSpace(jobID) == "" {
		return nil, newValidationError(op, "job ID is required")
	}
	if _, ok := ParseExportFormat(string(format)); !ok {
		return nil, newValidationError(op, "format must be json or csv")
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("format", string(format))
	req, err := c.buildRequest(ctx, op, http.MethodGet, "/api/export/"+pathEscape(jobID), q, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	status, body, err := c.doRequest(op, req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newExportError(op, status, body)
	}
	return body, nil
}
