package format

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"reels-dash-go/pkg/models"
)

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status models.JobStatus
		want   Class
	}{
		{models.JobStatusCompleted, ClassSuccess},
		{models.JobStatusFailed, ClassError},
		{models.JobStatusProcessing, ClassInfo},
		{models.JobStatusQueued, ClassWarning},
		{models.JobStatusCancelled, ClassMuted},
		{"paused", ClassMuted},
		{"", ClassMuted},
	}
	for _, tt := range tests {
		if got := StatusClass(tt.status); got != tt.want {
			t.Errorf("StatusClass(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestHealthAndAPIStatusClass(t *testing.T) {
	if HealthClass("healthy") != ClassSuccess || HealthClass("unhealthy") != ClassError || HealthClass("degraded") != ClassWarning {
		t.Error("health mapping wrong")
	}
	if APIStatusClass("running") != ClassSuccess || APIStatusClass("offline") != ClassError || APIStatusClass("starting") != ClassWarning {
		t.Error("api status mapping wrong")
	}
}

func TestSprintWithoutColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	if got := ClassSuccess.Sprint("done"); got != "done" {
		t.Errorf("Sprint = %q, want plain text", got)
	}
}

func TestJobsTable(t *testing.T) {
	color.NoColor = true
	jobs := []models.Job{{
		ID:             "0123456789abcdef",
		Name:           "weekly",
		Status:         models.JobStatusProcessing,
		ProfileURLs:    []string{"a", "b"},
		ExtractionMode: models.ExtractionModeProfile,
		Progress:       models.Progress{Total: 2, Completed: 1},
	}}
	out := JobsTable(jobs)
	for _, want := range []string{"01234567", "weekly", "processing", "1/2 (50%)", "Total: 1 job(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if JobsTable(nil) != "No jobs found.\n" {
		t.Error("empty table message wrong")
	}
}

func TestJobDetailCurrentProfile(t *testing.T) {
	color.NoColor = true
	job := &models.Job{
		ID:       "j1",
		Name:     "weekly",
		Status:   models.JobStatusProcessing,
		Progress: models.Progress{Total: 4, Completed: 1, Current: 2},
	}
	if out := JobDetail(job); !strings.Contains(out, "profile 2 of 4") {
		t.Errorf("detail missing current profile:\n%s", out)
	}

	job.Progress.Current = 0
	if out := JobDetail(job); strings.Contains(out, "Current:") {
		t.Errorf("idle job should not show a current profile:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdefghij", 8); got != "abcde..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 8); got != "short" {
		t.Errorf("Truncate = %q", got)
	}
}
