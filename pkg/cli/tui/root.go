package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/cli/format"
	"reels-dash-go/pkg/cli/logger"
	"reels-dash-go/pkg/config"
	"reels-dash-go/pkg/models"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rootModel is the dashboard. It shows the API status banner and the stats
// overview, polls both for its whole lifetime and hands the screen to one
// flow at a time.
type rootModel struct {
	// Shared dependencies
	client *client.Client
	cfg    *config.Config

	poll    *poller
	spinner spinner.Model

	status      *models.Status
	statusErr   error
	stats       *models.Stats
	statsErr    error
	lastUpdated time.Time
	loading     bool

	// Current active flow (when nil, the dashboard is shown)
	current tea.Model
	width   int
	height  int
}

// NewRootModel constructs the dashboard that launches every other view.
func NewRootModel(apiClient *client.Client, cfg *config.Config) tea.Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = infoStyle

	return &rootModel{
		client:  apiClient,
		cfg:     cfg,
		poll:    newPoller(time.Duration(cfg.Dashboard.StatusPollSeconds) * time.Second),
		spinner: s,
		loading: true,
	}
}

func (m *rootModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.poll.Start(), m.spinner.Tick)
}

// IsDelegating reports whether a flow currently owns the screen.
func (m *rootModel) IsDelegating() bool {
	return m.current != nil
}

func (m *rootModel) refresh() tea.Cmd {
	c := m.client
	return tea.Batch(
		func() tea.Msg {
			status, err := c.GetStatus(context.Background())
			return statusLoadedMsg{Status: status, Err: err}
		},
		func() tea.Msg {
			stats, err := c.GetStats(context.Background())
			return statsLoadedMsg{Stats: stats, Err: err}
		},
	)
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The dashboard keeps polling underneath any open flow
	switch msg := msg.(type) {
	case pollTickMsg:
		if m.poll.Owns(msg) {
			return m, tea.Batch(m.refresh(), m.poll.Next())
		}

	case statusLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			logger.LogError(msg.Err, "dashboard: status poll failed")
			m.status, m.statusErr = nil, msg.Err
			return m, nil
		}
		m.status, m.statusErr = msg.Status, nil
		m.lastUpdated = time.Now()
		return m, nil

	case statsLoadedMsg:
		if msg.Err != nil {
			// Keep the previous numbers on screen
			logger.LogError(msg.Err, "dashboard: stats poll failed")
			m.statsErr = msg.Err
			return m, nil
		}
		m.stats, m.statsErr = &msg.Stats.Stats, nil
		return m, nil

	case spinner.TickMsg:
		if msg.ID == m.spinner.ID() {
			if !m.loading {
				return m, nil
			}
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case MenuNavigationMsg:
		m.closeFlow()
		return m, m.refresh()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}

	// If we have an active flow, delegate all other messages to it.
	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.poll.Dispose()
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		case "1":
			return m, m.openFlow(NewJobManagerModel(m.client, m.cfg))
		case "2":
			return m, m.openFlow(NewResultsViewerModel(m.client, m.cfg))
		case "3":
			return m, m.openFlow(NewProfileValidatorModel(m.client))
		case "4":
			return m, m.openFlow(NewHealthMonitorModel(m.client, m.cfg))
		}
	}

	return m, nil
}

func (m *rootModel) openFlow(flow tea.Model) tea.Cmd {
	m.current = flow
	cmds := []tea.Cmd{flow.Init()}
	if m.width > 0 {
		// Views size themselves from the last known window size
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return tea.Batch(cmds...)
}

// closeFlow disposes the active flow so its pollers stop.
func (m *rootModel) closeFlow() {
	if d, ok := m.current.(disposer); ok {
		d.Dispose()
	}
	m.current = nil
}

func (m *rootModel) View() string {
	// When a flow is active, defer to its view.
	if m.current != nil {
		return m.current.View()
	}

	var b strings.Builder

	b.WriteString(renderTitle("Facebook Reels Scraper Dashboard"))
	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(renderDivider(60))
	b.WriteString("\n\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(boldStyle.Render("Select a view:") + "\n\n")
	b.WriteString("  " + selectedMarkerStyle.Render("1)") + " Jobs (create, monitor, cancel, export)\n")
	b.WriteString("  " + selectedMarkerStyle.Render("2)") + " Results\n")
	b.WriteString("  " + selectedMarkerStyle.Render("3)") + " Profile validator\n")
	b.WriteString("  " + selectedMarkerStyle.Render("4)") + " Health & logs\n")
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Press the number of a view, 'r' to refresh, or 'q' / Esc to quit.") + "\n")

	return b.String()
}

func (m *rootModel) renderBanner() string {
	if m.loading {
		return m.spinner.View() + " " + infoStyle.Render("Connecting to "+m.client.BaseURL()+"...") + "\n"
	}
	if m.statusErr != nil || m.status == nil {
		return renderBadge("offline", format.APIStatusClass("offline")) + "  " +
			errorStyle.Render("Unable to connect to API") + "\n"
	}

	s := m.status
	line := renderBadge(s.Status, format.APIStatusClass(s.Status))
	if s.Message != "" {
		line += "  " + s.Message
	}
	line += "\n" + mutedStyle.Render(fmt.Sprintf("%d active / %d total jobs • updated %s • %s",
		s.ActiveJobs, s.TotalJobs, m.lastUpdated.Format("15:04:05"), m.client.BaseURL()))
	return line + "\n"
}

func (m *rootModel) renderStats() string {
	if m.stats == nil {
		if m.statsErr != nil {
			return mutedStyle.Render("Statistics unavailable.") + "\n"
		}
		return mutedStyle.Render("Loading statistics...") + "\n"
	}
	st := m.stats

	card := func(label, value string, c format.Class) string {
		return cardStyle.Render(mutedStyle.Render(label) + "\n" + classStyle(c).Render(value))
	}

	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total jobs", format.FormatNumber(st.TotalJobs), format.ClassInfo),
		card("Active", format.FormatNumber(st.ActiveJobs), format.ClassWarning),
		card("Completed", format.FormatNumber(st.CompletedJobs), format.ClassSuccess),
		card("Failed", format.FormatNumber(st.FailedJobs), format.ClassError),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Profiles processed", format.FormatNumber(st.TotalProfilesProcessed), format.ClassInfo),
		card("Reels found", format.FormatNumber(st.TotalReelsFound), format.ClassInfo),
		card("Avg reels/profile", st.AverageReelsPerProfile, format.ClassInfo),
	)

	var b strings.Builder
	b.WriteString(row1 + "\n" + row2 + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf(
		"Modes: profile %d • main %d • comprehensive %d    Last 24h: %d jobs, %d profiles",
		st.ExtractionModeStats.Profile, st.ExtractionModeStats.Main, st.ExtractionModeStats.Comprehensive,
		st.Last24Hours.JobsCreated, st.Last24Hours.ProfilesProcessed)))
	b.WriteString("\n")
	if m.statsErr != nil {
		b.WriteString(renderInlineError(m.statsErr) + "\n")
	}
	return b.String()
}
