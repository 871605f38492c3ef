package client

import (
	"context"
	"net/url"
	"strconv"

	"reels-dash-go/pkg/models"
)

// DefaultLogLines is how many log lines GetLogs asks for when lines <= 0
const DefaultLogLines = 50

// GetHealth calls the liveness probe at /health
func (c *Client) GetHealth(ctx context.Context) (*models.Health, error) {
	var h models.Health
	if err := c.doGetRequest(ctx, "get health", "/health", nil, "status", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetMonitoringHealth returns the detailed health report
func (c *Client) GetMonitoringHealth(ctx context.Context) (*models.Health, error) {
	var h models.Health
	if err := c.doGetRequest(ctx, "get monitoring health", "/api/monitoring/health", nil, "status", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetStatus returns the service banner status
func (c *Client) GetStatus(ctx context.Context) (*models.Status, error) {
	var s models.Status
	if err := c.doGetRequest(ctx, "get status", "/api/status", nil, "status", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetConfig returns the scraping service's runtime configuration
func (c *Client) GetConfig(ctx context.Context) (*models.ServerConfig, error) {
	var cfg models.ServerConfig
	if err := c.doGetRequest(ctx, "get config", "/api/config", nil, "maxConcurrentProfiles", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetStats returns the server-side aggregate snapshot
func (c *Client) GetStats(ctx context.Context) (*models.StatsResponse, error) {
	var s models.StatsResponse
	if err := c.doGetRequest(ctx, "get stats", "/api/stats", nil, "stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetLogs returns the last lines of the server log, most recent last
func (c *Client) GetLogs(ctx context.Context, lines int) (*models.Logs, error) {
	if lines <= 0 {
		lines = DefaultLogLines
	}
	q := url.Values{}
	q.Set("lines", strconv.Itoa(lines))

	var logs models.Logs
	if err := c.doGetRequest(ctx, "get logs", "/api/monitoring/logs", q, "logs", &logs); err != nil {
		return nil, err
	}
	if logs.Logs == nil {
		logs.Logs = []string{}
	}
	return &logs, nil
}
