package models

import "time"

// JobStatus is the lifecycle state of a scraping job on the server.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// IsActive reports whether the job can still make progress.
func (s JobStatus) IsActive() bool {
	return s == JobStatusQueued || s == JobStatusProcessing
}

// ExtractionMode selects which parts of a profile the scraper walks.
type ExtractionMode string

const (
	ExtractionModeProfile       ExtractionMode = "profile"
	ExtractionModeMain          ExtractionMode = "main"
	ExtractionModeComprehensive ExtractionMode = "comprehensive"
)

// ExtractionModes lists the modes in the order they are offered to users.
var ExtractionModes = []ExtractionMode{
	ExtractionModeProfile,
	ExtractionModeMain,
	ExtractionModeComprehensive,
}

type Job struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Status         JobStatus      `json:"status"`
	ProfileURLs    []string       `json:"profileUrls"`
	TargetDate     string         `json:"targetDate,omitempty"`
	Concurrency    int            `json:"concurrency"`
	ExtractionMode ExtractionMode `json:"extractionMode"`
	CreatedAt      time.Time      `json:"createdAt"`
	StartedAt      *time.Time     `json:"startedAt,omitempty"`
	CompletedAt    *time.Time     `json:"completedAt,omitempty"`
	Progress       Progress       `json:"progress"`
	Results        []Result       `json:"results"`
	Error          string         `json:"error,omitempty"`
}

type Progress struct {
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Failed    int    `json:"failed"`
	Current   int    `json:"current,omitempty"` // 1-based position of the profile in progress
}

// Done returns the number of profiles that finished, successfully or not.
func (p Progress) Done() int {
	return p.Completed + p.Failed
}

// Fraction returns the finished share of the job in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done()) / float64(p.Total)
	if f > 1 {
		return 1
	}
	return f
}

// CreateJobParams is the body of POST /api/jobs.
type CreateJobParams struct {
	JobName        string         `json:"jobName" validate:"required" binding:"required"`
	ProfileURLs    []string       `json:"profileUrls" validate:"required,min=1,dive,required" binding:"required,min=1,dive,required"`
	TargetDate     string         `json:"targetDate,omitempty"`
	Concurrency    int            `json:"concurrency,omitempty" validate:"omitempty,min=1" binding:"omitempty,min=1"`
	ExtractionMode ExtractionMode `json:"extractionMode,omitempty" validate:"omitempty,oneof=profile main comprehensive" binding:"omitempty,oneof=profile main comprehensive"`
}

// CreateJobResponse is what the server answers after accepting a job.
type CreateJobResponse struct {
	JobID   string `json:"jobId"`
	Message string `json:"message,omitempty"`
	Job     *Job   `json:"job,omitempty"`
}

// ListJobsParams filters GET /api/jobs. Zero values are omitted from the query.
type ListJobsParams struct {
	Status JobStatus
	Limit  int
	Offset int
}

type JobList struct {
	Jobs       []Job      `json:"jobs"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}
