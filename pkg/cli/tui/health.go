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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const healthNotice = "health"

// healthMonitorModel shows server health and the tail of its log.
// Auto-refresh is off until toggled.
type healthMonitorModel struct {
	client   *client.Client
	logLines int

	poll      *poller
	health    *models.Health
	healthErr error
	loaded    bool
	checkedAt time.Time

	logs    *models.Logs
	logsErr error

	notice notice
}

// NewHealthMonitorModel creates the health monitor flow.
func NewHealthMonitorModel(c *client.Client, cfg *config.Config) tea.Model {
	model := &healthMonitorModel{
		client:   c,
		logLines: cfg.Dashboard.LogLines,
		poll:     newPoller(time.Duration(cfg.Dashboard.HealthPollSeconds) * time.Second),
	}

	return NewViewportWrapper(model, ViewportConfig{
		Title:       "Health & Logs",
		ShowHeader:  true,
		ShowFooter:  true,
		UseViewport: true,
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: HealthHelpContent,
		MinWidth:    60,
		MinHeight:   10,
	})
}

func (m *healthMonitorModel) Init() tea.Cmd {
	return tea.Batch(m.fetchHealth(), m.fetchLogs())
}

func (m *healthMonitorModel) Dispose() {
	m.poll.Dispose()
}

func (m *healthMonitorModel) fetchHealth() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		h, err := c.GetMonitoringHealth(context.Background())
		return healthLoadedMsg{Health: h, Err: err}
	}
}

func (m *healthMonitorModel) fetchLogs() tea.Cmd {
	c, n := m.client, m.logLines
	return func() tea.Msg {
		logs, err := c.GetLogs(context.Background(), n)
		return logsLoadedMsg{Logs: logs, Err: err}
	}
}

func (m *healthMonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollTickMsg:
		if m.poll.Owns(msg) {
			return m, tea.Batch(m.fetchHealth(), m.fetchLogs(), m.poll.Next())
		}

	case healthLoadedMsg:
		m.loaded = true
		m.checkedAt = time.Now()
		if msg.Err != nil {
			// Never show stale numbers as if they were current
			logger.LogError(msg.Err, "health: check failed")
			m.health, m.healthErr = nil, msg.Err
			return m, nil
		}
		m.health, m.healthErr = msg.Health, nil

	case logsLoadedMsg:
		if msg.Err != nil {
			logger.LogError(msg.Err, "health: logs fetch failed")
			m.logsErr = msg.Err
			return m, nil
		}
		m.logs, m.logsErr = msg.Logs, nil

	case noticeExpiredMsg:
		m.notice.expire(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "b":
			return m, func() tea.Msg { return MenuNavigationMsg{} }
		case "r":
			return m, m.fetchHealth()
		case "l":
			return m, m.fetchLogs()
		case "a":
			if m.poll.Active() {
				m.poll.Stop()
				return m, m.notice.set(healthNotice, "Auto-refresh off", nil)
			}
			return m, tea.Batch(
				m.notice.set(healthNotice, fmt.Sprintf("Auto-refresh every %s", m.poll.Interval()), nil),
				m.fetchHealth(),
				m.poll.Start(),
			)
		}
	}
	return m, nil
}

func (m *healthMonitorModel) View() string {
	var b strings.Builder

	auto := mutedStyle.Render("auto-refresh off")
	if m.poll.Active() {
		auto = infoStyle.Render(fmt.Sprintf("auto-refresh every %s", m.poll.Interval()))
	}
	b.WriteString(auto)
	if !m.checkedAt.IsZero() {
		b.WriteString(mutedStyle.Render(" • checked " + m.checkedAt.Format("15:04:05")))
	}
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(renderLoadingState("Checking health..."))
	case m.healthErr != nil || m.health == nil:
		b.WriteString(renderHealthUnavailable(m.healthErr))
	default:
		b.WriteString(renderHealth(m.health))
	}

	b.WriteString("\n" + boldStyle.Render("Recent logs") + "\n")
	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(m.notice.View())
	b.WriteString(helpStyle.Render("(r refresh • l logs • a auto-refresh • Esc back)") + "\n")
	return b.String()
}

// renderHealthUnavailable is the explicit placeholder shown in place of the
// last good snapshot.
func renderHealthUnavailable(err error) string {
	var b strings.Builder
	b.WriteString(renderField("Status", renderBadge("unhealthy", format.HealthClass("unhealthy"))))
	b.WriteString(errorStyle.Render("Unable to connect to API") + "\n")
	if err != nil {
		b.WriteString(mutedStyle.Render(client.UserMessage(err)) + "\n")
	}
	return b.String()
}

func renderHealth(h *models.Health) string {
	var b strings.Builder
	b.WriteString(renderField("Status", renderBadge(h.Status, format.HealthClass(h.Status))))
	if h.Version != "" {
		b.WriteString(renderField("Version", h.Version))
	}
	b.WriteString(renderField("Uptime", format.FormatUptime(h.Uptime)))
	b.WriteString(renderField("Active jobs", format.FormatNumber(h.ActiveJobs)))
	if loads, ok := h.LoadAverages(); ok {
		parts := make([]string, len(loads))
		for i, l := range loads {
			parts[i] = fmt.Sprintf("%.2f", l)
		}
		b.WriteString(renderField("System load", strings.Join(parts, " ")))
	}

	mem := h.Memory
	b.WriteString("\n" + boldStyle.Render("Memory") + "\n")
	b.WriteString(renderField("RSS", format.FormatByteSize(mem.RSS)))
	b.WriteString(renderField("Heap", fmt.Sprintf("%s / %s (%s)",
		format.FormatByteSize(mem.HeapUsed), format.FormatByteSize(mem.HeapTotal), format.FormatPercentage(mem.HeapFraction()))))
	b.WriteString("  " + renderProgressBar(mem.HeapFraction(), 30) + "\n")
	b.WriteString(renderField("External", format.FormatByteSize(mem.External)))
	return b.String()
}

func (m *healthMonitorModel) renderLogs() string {
	var b strings.Builder
	if m.logsErr != nil {
		b.WriteString(renderInlineError(m.logsErr) + "\n")
	}
	if m.logs == nil {
		if m.logsErr == nil {
			b.WriteString(mutedStyle.Render("Loading logs...") + "\n")
		}
		return b.String()
	}
	if len(m.logs.Logs) == 0 {
		b.WriteString(mutedStyle.Render("No log lines.") + "\n")
		return b.String()
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("last %d of %d lines", len(m.logs.Logs), m.logs.TotalLines)) + "\n")
	for _, line := range m.logs.Logs {
		b.WriteString(logLineStyle(line).Render(line) + "\n")
	}
	return b.String()
}

func logLineStyle(line string) lipgloss.Style {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "level=error"), strings.Contains(lower, "[error]"):
		return errorStyle
	case strings.Contains(lower, "level=warn"), strings.Contains(lower, "[warn"):
		return warningStyle
	default:
		return mutedStyle
	}
}
