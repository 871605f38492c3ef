package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/cli/format"
	"reels-dash-go/pkg/cli/logger"
	"reels-dash-go/pkg/models"

	"github.com/sirupsen/logrus"
)

// ListJobs prints one page of jobs, optionally filtered by status.
func (a *App) ListJobs(ctx context.Context, params models.ListJobsParams) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	list, err := apiClient.GetJobs(ctx, params)
	if err != nil {
		return err
	}

	a.printf("%s", format.JobsTable(list.Jobs))
	p := list.Pagination
	a.printf("\nShowing %d of %d job(s)", len(list.Jobs), p.Total)
	if p.HasMore {
		a.printf(" (more with --offset %d)", p.Offset+len(list.Jobs))
	}
	a.printf("\n")
	return nil
}

// ShowJob prints a single job with its progress and results.
func (a *App) ShowJob(ctx context.Context, id string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	job, err := apiClient.GetJob(ctx, id)
	if err != nil {
		return err
	}
	a.printf("%s", format.JobDetail(job))
	return nil
}

// CreateJob submits a new job and prints its id.
func (a *App) CreateJob(ctx context.Context, params models.CreateJobParams) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	resp, err := apiClient.CreateJob(ctx, params)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{"job_id": resp.JobID, "profiles": len(params.ProfileURLs)}).Info("job created")
	msg := resp.Message
	if msg == "" {
		msg = "Job created"
	}
	a.printf("%s %s\n", format.ClassSuccess.Sprint("✓"), msg)
	a.printf("  Job ID: %s\n", resp.JobID)
	return nil
}

// CancelJob sends DELETE for a job and prints the server's answer as is.
func (a *App) CancelJob(ctx context.Context, id string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	msg, err := apiClient.DeleteJob(ctx, id)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Request accepted"
	}
	a.printf("%s %s\n", format.ClassSuccess.Sprint("✓"), msg)
	return nil
}

// ExportJob downloads a job's results and writes them to outPath, or to
// job-<id>-results.<format> in the export directory when outPath is empty.
func (a *App) ExportJob(ctx context.Context, id string, f client.ExportFormat, outPath string) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	data, err := apiClient.ExportResults(ctx, id, f)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = filepath.Join(a.cfg.Dashboard.ExportDir, fmt.Sprintf("job-%s-results.%s", id, f))
	}
	if outPath == "-" {
		_, err := a.out.Write(data)
		return err
	}
	if err := writeFile(outPath, data); err != nil {
		return err
	}
	a.printf("%s Exported %s to %s\n", format.ClassSuccess.Sprint("✓"), format.FormatByteSize(int64(len(data))), outPath)
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
