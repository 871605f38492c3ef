package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is where the scraping service listens by default
	DefaultBaseURL = "http://localhost:3001"

	defaultTimeout = 30 * time.Second
)

// Option customizes a Client
type Option func(*Client)

// Client is an HTTP client for the reels scraping API. It never retries,
// caches or de-duplicates: every call is one independent request.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *logrus.Logger
}

// WithTimeout bounds every request that arrives without its own deadline
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying transport
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger routes request logging to l
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new API client
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		baseURL:    baseURL,
		timeout:    defaultTimeout,
		httpClient: &http.Client{},
		logger:     discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildRequest creates an HTTP request with proper headers
func (c *Client) buildRequest(ctx context.Context, op, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, newRequestError(op, "failed to create request", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// doRequest sends req and returns the status code and the full body.
// Only transport failures are reported as errors here.
func (c *Client) doRequest(op string, req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"op":     op,
			"method": req.Method,
			"url":    req.URL.String(),
		}).WithError(err).Warn("request failed")
		return 0, nil, newNetworkError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, newNetworkError(op, fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.WithFields(logrus.Fields{
		"op":          op,
		"method":      req.Method,
		"url":         req.URL.String(),
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("request completed")

	return resp.StatusCode, body, nil
}

// send performs one request with an optional JSON payload and returns the
// 2xx body. Non-2xx statuses become KindHTTP errors.
func (c *Client) send(ctx context.Context, op, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, newRequestError(op, "failed to marshal request", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := c.buildRequest(ctx, op, method, path, query, body)
	if err != nil {
		return nil, err
	}

	status, respBody, err := c.doRequest(op, req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newHTTPError(op, status, respBody)
	}
	return respBody, nil
}

// doEnvelopeRequest sends a request and decodes the normalized payload into out.
func (c *Client) doEnvelopeRequest(ctx context.Context, op, method, path string, query url.Values, payload interface{}, primaryKey string, out interface{}) (Shape, error) {
	body, err := c.send(ctx, op, method, path, query, payload)
	if err != nil {
		return ShapeRaw, err
	}

	shape, data, err := normalizeEnvelope(body, primaryKey)
	if err != nil {
		return shape, newInvalidResponseError(op, "failed to parse response", err)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return shape, newInvalidResponseError(op, "failed to decode response", err)
		}
	}
	return shape, nil
}

// doGetRequest performs a GET request
func (c *Client) doGetRequest(ctx context.Context, op, path string, query url.Values, primaryKey string, out interface{}) error {
	_, err := c.doEnvelopeRequest(ctx, op, http.MethodGet, path, query, nil, primaryKey, out)
	return err
}

// doJSONRequest performs a JSON request (POST, DELETE)
func (c *Client) doJSONRequest(ctx context.Context, op, method, path string, payload interface{}, primaryKey string, out interface{}) error {
	_, err := c.doEnvelopeRequest(ctx, op, method, path, nil, payload, primaryKey, out)
	return err
}

// errorMessage pulls a human message out of an error body, preferring the
// JSON "error" then "message" fields and falling back to the raw text.
func errorMessage(body []byte) string {
	var errorResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errorResp); err == nil {
		if errorResp.Error != "" {
			return errorResp.Error
		}
		if errorResp.Message != "" {
			return errorResp.Message
		}
	}
	return strings.TrimSpace(string(body))
}

func pathEscape(id string) string {
	return url.PathEscape(strings.TrimSpace(id))
}
