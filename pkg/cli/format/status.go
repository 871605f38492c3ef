package format

import (
	"github.com/fatih/color"

	"reels-dash-go/pkg/models"
)

// Class is a presentation class shared by every view that colours a status.
type Class string

const (
	ClassSuccess Class = "success"
	ClassError   Class = "error"
	ClassInfo    Class = "info"
	ClassWarning Class = "warning"
	ClassMuted   Class = "muted"
)

// StatusClass maps a job status to its class; unknown statuses are muted.
func StatusClass(status models.JobStatus) Class {
	switch status {
	case models.JobStatusCompleted:
		return ClassSuccess
	case models.JobStatusFailed:
		return ClassError
	case models.JobStatusProcessing:
		return ClassInfo
	case models.JobStatusQueued:
		return ClassWarning
	default:
		return ClassMuted
	}
}

// HealthClass maps a monitoring health status.
func HealthClass(status string) Class {
	switch status {
	case "healthy":
		return ClassSuccess
	case "unhealthy":
		return ClassError
	default:
		return ClassWarning
	}
}

// APIStatusClass maps the banner status from /api/status.
func APIStatusClass(status string) Class {
	switch status {
	case "running":
		return ClassSuccess
	case "offline":
		return ClassError
	default:
		return ClassWarning
	}
}

var classColors = map[Class]*color.Color{
	ClassSuccess: color.New(color.FgGreen, color.Bold),
	ClassError:   color.New(color.FgRed, color.Bold),
	ClassInfo:    color.New(color.FgBlue),
	ClassWarning: color.New(color.FgYellow),
	ClassMuted:   color.New(color.FgHiBlack),
}

// Sprint colours s for a terminal. color.NoColor disables it globally.
func (c Class) Sprint(s string) string {
	if col, ok := classColors[c]; ok {
		return col.Sprint(s)
	}
	return s
}
