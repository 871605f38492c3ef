package models

import (
	"encoding/json"
	"time"
)

type Stats struct {
	TotalJobs              int                 `json:"totalJobs"`
	ActiveJobs             int                 `json:"activeJobs"`
	CompletedJobs          int                 `json:"completedJobs"`
	FailedJobs             int                 `json:"failedJobs"`
	TotalProfilesProcessed int                 `json:"totalProfilesProcessed"`
	TotalReelsFound        int                 `json:"totalReelsFound"`
	AverageReelsPerProfile string              `json:"averageReelsPerProfile"`
	ExtractionModeStats    ExtractionModeStats `json:"extractionModeStats"`
	Last24Hours            Last24Hours         `json:"last24Hours"`
}

type ExtractionModeStats struct {
	Profile       int `json:"profile"`
	Main          int `json:"main"`
	Comprehensive int `json:"comprehensive"`
}

type Last24Hours struct {
	JobsCreated       int `json:"jobsCreated"`
	ProfilesProcessed int `json:"profilesProcessed"`
}

type StatsResponse struct {
	Stats     Stats     `json:"stats"`
	Timestamp time.Time `json:"timestamp"`
}

type Health struct {
	Status     string          `json:"status"`
	Timestamp  time.Time       `json:"timestamp"`
	Uptime     float64         `json:"uptime"`
	Version    string          `json:"version,omitempty"`
	Memory     Memory          `json:"memory"`
	ActiveJobs int             `json:"activeJobs"`
	SystemLoad json.RawMessage `json:"systemLoad,omitempty"`
}

// LoadAverages decodes SystemLoad when the server reports it as a list of
// numbers. ok is false for any other shape.
func (h Health) LoadAverages() (loads []float64, ok bool) {
	if len(h.SystemLoad) == 0 {
		return nil, false
	}
	if err := json.Unmarshal(h.SystemLoad, &loads); err != nil {
		return nil, false
	}
	return loads, true
}

// Memory is reported in bytes.
type Memory struct {
	RSS       int64 `json:"rss"`
	HeapTotal int64 `json:"heapTotal"`
	HeapUsed  int64 `json:"heapUsed"`
	External  int64 `json:"external"`
}

// HeapFraction is HeapUsed over HeapTotal, or 0 when nothing is reported.
func (m Memory) HeapFraction() float64 {
	if m.HeapTotal <= 0 {
		return 0
	}
	return float64(m.HeapUsed) / float64(m.HeapTotal)
}

type Status struct {
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	ActiveJobs int       `json:"activeJobs"`
	TotalJobs  int       `json:"totalJobs"`
	Timestamp  time.Time `json:"timestamp"`
}

// ServerConfig is the scraping service's own runtime configuration.
type ServerConfig struct {
	MaxConcurrentProfiles int    `json:"maxConcurrentProfiles"`
	APIPort               int    `json:"apiPort"`
	OutputDir             string `json:"outputDir"`
	LogLevel              string `json:"logLevel"`
	ScrollCount           int    `json:"scrollCount"`
	RetryAttempts         int    `json:"retryAttempts"`
	RetryDelay            int    `json:"retryDelay"`
	RequestTimeout        int    `json:"requestTimeout"`
	PageLoadTimeout       int    `json:"pageLoadTimeout"`
}

// Logs holds the tail of the server log, oldest line first.
type Logs struct {
	Logs           []string `json:"logs"`
	TotalLines     int      `json:"totalLines"`
	RequestedLines int      `json:"requestedLines"`
}
