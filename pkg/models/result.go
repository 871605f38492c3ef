package models

// ReelSource records which part of a profile a reel was found in.
type ReelSource string

const (
	ReelSourceTimeline            ReelSource = "timeline"
	ReelSourceProfileReelsSection ReelSource = "profile_reels_section"
	ReelSourceMainReelsSection    ReelSource = "main_reels_section"
	ReelSourceReelsSection        ReelSource = "reels_section"
	ReelSourceBoth                ReelSource = "both"
)

// Result is the outcome of scraping one profile. Data is set on success,
// Error on failure.
type Result struct {
	ProfileID      string         `json:"profileId"`
	ProfileURL     string         `json:"profileUrl"`
	ExtractionMode ExtractionMode `json:"extractionMode"`
	Success        bool           `json:"success"`
	Timestamp      string         `json:"timestamp"`
	Data           *ResultData    `json:"data,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// ProfileName returns the scraped profile name, falling back to the URL.
func (r Result) ProfileName() string {
	if r.Data != nil && r.Data.Profile.Name != "" {
		return r.Data.Profile.Name
	}
	return r.ProfileURL
}

type ResultData struct {
	Profile             Profile       `json:"profile"`
	Posts               []Reel        `json:"posts,omitempty"`
	Reels               []Reel        `json:"reels"`
	Timeline            []Reel        `json:"timeline,omitempty"`
	ReelsSection        []Reel        `json:"reelsSection,omitempty"`
	ProfileReelsSection []Reel        `json:"profileReelsSection,omitempty"`
	MainReelsSection    []Reel        `json:"mainReelsSection,omitempty"`
	CombinedReels       []Reel        `json:"combinedReels,omitempty"`
	Summary             ResultSummary `json:"summary"`
}

type Profile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ResultSummary is the scraper's own tally, passed through untouched.
type ResultSummary struct {
	ExtractionMode      ExtractionMode `json:"extractionMode"`
	TotalReelsFound     int            `json:"totalReelsFound"`
	TimelineReels       int            `json:"timelineReels"`
	ProfileReelsSection int            `json:"profileReelsSection"`
	MainReelsSection    int            `json:"mainReelsSection"`
	CombinedReels       int            `json:"combinedReels"`
	TargetDate          string         `json:"targetDate,omitempty"`
	TargetDateFound     bool           `json:"targetDateFound"`
}

type Reel struct {
	Index            int        `json:"index"`
	ReelID           string     `json:"reelId"`
	URL              string     `json:"url"`
	Date             string     `json:"date,omitempty"`
	DateText         string     `json:"dateText,omitempty"`
	ViewCount        string     `json:"viewCount,omitempty"`
	ViewCountNumeric *float64   `json:"viewCountNumeric,omitempty"`
	ViewCountMethod  string     `json:"viewCountMethod,omitempty"`
	Source           ReelSource `json:"source"`
	Success          bool       `json:"success"`
	ExtractionMethod string     `json:"extractionMethod,omitempty"`
	WalkAttempts     int        `json:"walkAttempts,omitempty"`
	HasDate          bool       `json:"hasDate"`
	HasViews         bool       `json:"hasViews"`
	Complete         bool       `json:"complete"`
	Timestamp        string     `json:"timestamp,omitempty"`
}

// ListResultsParams filters GET /api/results. Zero values are omitted.
type ListResultsParams struct {
	JobID      string
	ProfileURL string
	Limit      int
	Offset     int
}

type ResultList struct {
	Results    []Result   `json:"results"`
	Pagination Pagination `json:"pagination"`
}

// ValidationEntry is the server's verdict on a single profile URL.
type ValidationEntry struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ScrapeParams is the body of the legacy single-profile endpoint.
type ScrapeParams struct {
	ProfileURL     string         `json:"profileUrl"`
	TargetDate     string         `json:"targetDate,omitempty"`
	ExtractionMode ExtractionMode `json:"extractionMode,omitempty"`
}

// BatchScrapeParams is the body of the legacy batch endpoint.
type BatchScrapeParams struct {
	ProfileURLs    []string       `json:"profileUrls"`
	TargetDate     string         `json:"targetDate,omitempty"`
	ExtractionMode ExtractionMode `json:"extractionMode,omitempty"`
}

// BatchScrapeResponse is the legacy batch answer, one Result per profile.
type BatchScrapeResponse struct {
	Success bool     `json:"success"`
	Results []Result `json:"results"`
	Error   string   `json:"error,omitempty"`
}
