package tui

import (
	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/models"
)

// MenuNavigationMsg asks the root model to close the active view.
type MenuNavigationMsg struct{}

// Dashboard
type statusLoadedMsg struct {
	Status *models.Status
	Err    error
}

type statsLoadedMsg struct {
	Stats *models.StatsResponse
	Err   error
}

// Job manager
type jobsLoadedMsg struct {
	Jobs *models.JobList
	Err  error
}

type jobCreatedMsg struct {
	Resp *models.CreateJobResponse
	Err  error
}

type jobDeletedMsg struct {
	ID      string
	Message string
	Err     error
}

type jobExportedMsg struct {
	Path string
	Err  error
}

// Results viewer
type resultsLoadedMsg struct {
	Results *models.ResultList
	Offset  int
	Err     error
}

type resultExportedMsg struct {
	Path string
	Err  error
}

// Profile validator
type validationDoneMsg struct {
	Result *client.ValidationResult
	Err    error
}

// Health monitor
type healthLoadedMsg struct {
	Health *models.Health
	Err    error
}

type logsLoadedMsg struct {
	Logs *models.Logs
	Err  error
}
