package cli

import (
	"context"
	"fmt"
	"time"

	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/cli/format"
	"reels-dash-go/pkg/cli/logger"
)

// ShowStatus prints the API banner status.
func (a *App) ShowStatus(ctx context.Context) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	status, err := apiClient.GetStatus(ctx)
	if err != nil {
		if client.IsNetwork(err) {
			a.printf("%s  Unable to connect to API (%s)\n", format.ClassError.Sprint("offline"), apiClient.BaseURL())
		}
		return err
	}

	a.printf("%s  %s\n", format.APIStatusClass(status.Status).Sprint(status.Status), status.Message)
	a.printf("Active jobs: %d / Total jobs: %d\n", status.ActiveJobs, status.TotalJobs)
	return nil
}

// ShowStats prints the aggregate statistics.
func (a *App) ShowStats(ctx context.Context) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	stats, err := apiClient.GetStats(ctx)
	if err != nil {
		return err
	}
	a.printf("%s", format.StatsSummary(stats.Stats))
	return nil
}

// ShowHealth prints monitoring health. On failure it prints the
// unhealthy placeholder before returning the error.
func (a *App) ShowHealth(ctx context.Context) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	health, err := apiClient.GetMonitoringHealth(ctx)
	if err != nil {
		a.printf("Status: %s  Unable to connect to API\n", format.ClassError.Sprint("unhealthy"))
		return err
	}
	a.printf("%s", format.HealthSummary(*health))
	return nil
}

// ShowLogs prints the last n server log lines.
func (a *App) ShowLogs(ctx context.Context, n int) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	logs, err := apiClient.GetLogs(ctx, n)
	if err != nil {
		return err
	}
	for _, line := range logs.Logs {
		a.printf("%s\n", line)
	}
	a.printf("%s\n", format.ClassMuted.Sprint(fmt.Sprintf("(%d of %d lines)", len(logs.Logs), logs.TotalLines)))
	return nil
}

// ShowServerConfig prints the scraping service's own configuration.
func (a *App) ShowServerConfig(ctx context.Context) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	cfg, err := apiClient.GetConfig(ctx)
	if err != nil {
		return err
	}
	a.printf("%s", format.ServerConfigSummary(*cfg))
	return nil
}

// Watch prints status, stats and active jobs every interval until ctx is
// cancelled. Failed polls are reported and polling carries on.
func (a *App) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Duration(a.cfg.Dashboard.JobsPollSeconds) * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.watchOnce(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (a *App) watchOnce(ctx context.Context) {
	a.printf("\n%s\n", format.ClassMuted.Sprint("── "+time.Now().Format("15:04:05")+" ──"))
	if err := a.ShowStatus(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.LogError(err, "watch: status poll failed")
		a.printf("%s\n", format.ClassError.Sprint(client.UserMessage(err)))
		return
	}
	if err := a.ShowStats(ctx); err != nil && ctx.Err() == nil {
		logger.LogError(err, "watch: stats poll failed")
		a.printf("%s\n", format.ClassError.Sprint(client.UserMessage(err)))
	}
}
