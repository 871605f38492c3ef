package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/cli/logger"
	"reels-dash-go/pkg/cli/tui"
	"reels-dash-go/pkg/config"

	tea "github.com/charmbracelet/bubbletea"
)

type App struct {
	cfg    *config.Config
	client *client.Client
	out    io.Writer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg: cfg,
		out: os.Stdout,
	}
}

// SetOutput redirects command output, mainly for tests.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// getClient returns the HTTP client, creating it if necessary
func (a *App) getClient() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	if a.cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}

	a.client = client.NewClient(a.cfg.API.BaseURL,
		client.WithTimeout(time.Duration(a.cfg.API.RequestTimeout)*time.Second),
		client.WithLogger(logger.Logger()),
	)
	return a.client, nil
}

// Run starts the interactive dashboard.
func (a *App) Run() error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	logger.Info("starting dashboard against %s", apiClient.BaseURL())
	p := tea.NewProgram(tui.NewRootModel(apiClient, a.cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
