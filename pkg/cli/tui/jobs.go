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

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Step constants for the job manager state machine
const (
	jobsStepList = iota
	jobsStepDetail
	jobsStepCreate
	jobsStepConfirm
	jobsStepExport
)

const jobsNotice = "jobs"

// jobStatusFilters is the order the status filter cycles through.
var jobStatusFilters = []models.JobStatus{
	"",
	models.JobStatusQueued,
	models.JobStatusProcessing,
	models.JobStatusCompleted,
	models.JobStatusFailed,
	models.JobStatusCancelled,
}

// jobManagerModel lists, creates, cancels and exports jobs. The list is
// refreshed on its own poller while the view is open.
type jobManagerModel struct {
	client    *client.Client
	exportDir string
	pageSize  int

	poll       *poller
	jobs       []models.Job
	pagination models.Pagination
	loaded     bool
	loadErr    error
	filter     int
	selected   int

	step       int
	returnStep int
	targetID   string

	form    jobForm
	confirm textinput.Model
	notice  notice
	busy    bool
}

// NewJobManagerModel creates the job manager flow.
func NewJobManagerModel(c *client.Client, cfg *config.Config) tea.Model {
	confirm := textinput.New()
	confirm.Placeholder = "y/N"
	confirm.CharLimit = 3
	confirm.Width = 10

	model := &jobManagerModel{
		client:    c,
		exportDir: cfg.Dashboard.ExportDir,
		pageSize:  cfg.Dashboard.PageSize,
		poll:      newPoller(time.Duration(cfg.Dashboard.JobsPollSeconds) * time.Second),
		step:      jobsStepList,
		confirm:   confirm,
	}

	return NewViewportWrapper(model, ViewportConfig{
		Title:       "Jobs",
		ShowHeader:  true,
		ShowFooter:  true,
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: JobsHelpContent,
		MinWidth:    60,
		MinHeight:   10,
	})
}

func (m *jobManagerModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.poll.Start())
}

func (m *jobManagerModel) Dispose() {
	m.poll.Dispose()
}

func (m *jobManagerModel) CapturingInput() bool {
	return m.step == jobsStepCreate || m.step == jobsStepConfirm
}

func (m *jobManagerModel) fetch() tea.Cmd {
	c := m.client
	params := models.ListJobsParams{Status: jobStatusFilters[m.filter], Limit: m.pageSize}
	return func() tea.Msg {
		jobs, err := c.GetJobs(context.Background(), params)
		return jobsLoadedMsg{Jobs: jobs, Err: err}
	}
}

func (m *jobManagerModel) selectedJob() *models.Job {
	if m.selected < 0 || m.selected >= len(m.jobs) {
		return nil
	}
	return &m.jobs[m.selected]
}

func (m *jobManagerModel) jobByID(id string) *models.Job {
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			return &m.jobs[i]
		}
	}
	return nil
}

func (m *jobManagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollTickMsg:
		if m.poll.Owns(msg) {
			return m, tea.Batch(m.fetch(), m.poll.Next())
		}
		return m, nil

	case jobsLoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			logger.LogError(msg.Err, "jobs: poll failed")
			m.loadErr = msg.Err
			return m, nil
		}
		m.loadErr = nil
		m.jobs = msg.Jobs.Jobs
		m.pagination = msg.Jobs.Pagination
		m.selected = clampSelection(m.selected, len(m.jobs))
		return m, nil

	case jobCreatedMsg:
		m.busy = false
		if msg.Err != nil {
			m.form.err = msg.Err
			return m, nil
		}
		logger.WithFields(logrus.Fields{"job_id": msg.Resp.JobID}).Info("job created")
		m.step = jobsStepList
		text := msg.Resp.Message
		if text == "" {
			text = "Job created"
		}
		return m, tea.Batch(m.notice.set(jobsNotice, fmt.Sprintf("%s (%s)", text, format.ShortID(msg.Resp.JobID)), nil), m.fetch())

	case jobDeletedMsg:
		m.busy = false
		if msg.Err != nil {
			return m, m.notice.set(jobsNotice, "", msg.Err)
		}
		logger.WithFields(logrus.Fields{"job_id": msg.ID}).Info("job cancelled or removed")
		text := msg.Message
		if text == "" {
			text = "Request accepted"
		}
		return m, tea.Batch(m.notice.set(jobsNotice, text, nil), m.fetch())

	case jobExportedMsg:
		m.busy = false
		if msg.Err != nil {
			return m, m.notice.set(jobsNotice, "", msg.Err)
		}
		return m, m.notice.set(jobsNotice, "Exported to "+msg.Path, nil)

	case noticeExpiredMsg:
		m.notice.expire(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.step {
		case jobsStepList:
			return m.handleListKeys(msg)
		case jobsStepDetail:
			return m.handleDetailKeys(msg)
		case jobsStepCreate:
			return m.handleCreateKeys(msg)
		case jobsStepConfirm:
			return m.handleConfirmKeys(msg)
		case jobsStepExport:
			return m.handleExportKeys(msg)
		}
	}

	// Cursor blink and other non-key messages for the focused inputs
	switch m.step {
	case jobsStepCreate:
		return m, m.form.update(msg)
	case jobsStepConfirm:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *jobManagerModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if newSelected, handled := handleListNavigation(msg.String(), m.selected, len(m.jobs)); handled {
		m.selected = newSelected
		return m, nil
	}
	switch msg.String() {
	case "esc", "b":
		return m, func() tea.Msg { return MenuNavigationMsg{} }
	case "enter":
		if job := m.selectedJob(); job != nil {
			m.targetID = job.ID
			m.step = jobsStepDetail
		}
	case "n":
		m.form = newJobForm()
		m.step = jobsStepCreate
		return m, textinput.Blink
	case "r":
		return m, m.fetch()
	case "f":
		m.filter = (m.filter + 1) % len(jobStatusFilters)
		m.selected = 0
		return m, m.fetch()
	case "d", "x":
		if job := m.selectedJob(); job != nil {
			return m, m.startConfirm(job.ID, jobsStepList)
		}
	case "e":
		if job := m.selectedJob(); job != nil {
			m.targetID = job.ID
			m.returnStep = jobsStepList
			m.step = jobsStepExport
		}
	}
	return m, nil
}

func (m *jobManagerModel) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "enter":
		m.step = jobsStepList
	case "r":
		return m, m.fetch()
	case "d", "x":
		return m, m.startConfirm(m.targetID, jobsStepDetail)
	case "e":
		m.returnStep = jobsStepDetail
		m.step = jobsStepExport
	}
	return m, nil
}

func (m *jobManagerModel) startConfirm(id string, from int) tea.Cmd {
	m.targetID = id
	m.returnStep = from
	m.step = jobsStepConfirm
	m.confirm.SetValue("")
	return m.confirm.Focus()
}

func (m *jobManagerModel) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.confirm.Blur()
		m.step = m.returnStep
		return m, nil
	case "enter":
		m.confirm.Blur()
		m.step = m.returnStep
		answer := strings.ToLower(strings.TrimSpace(m.confirm.Value()))
		if answer != "y" && answer != "yes" {
			return m, nil
		}
		m.busy = true
		return m, m.deleteJob(m.targetID)
	}
	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	return m, cmd
}

func (m *jobManagerModel) handleExportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.step = m.returnStep
	var f client.ExportFormat
	switch msg.String() {
	case "j":
		f = client.ExportJSON
	case "c":
		f = client.ExportCSV
	default:
		return m, nil
	}
	m.busy = true
	return m, m.exportJob(m.targetID, f)
}

func (m *jobManagerModel) handleCreateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.step = jobsStepList
		return m, nil
	case "ctrl+s":
		if m.busy {
			return m, nil
		}
		params, err := m.form.params()
		if err != nil {
			m.form.err = err
			return m, nil
		}
		m.form.err = nil
		m.busy = true
		return m, m.createJob(params)
	}
	return m, m.form.update(msg)
}

func (m *jobManagerModel) createJob(params models.CreateJobParams) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		resp, err := c.CreateJob(context.Background(), params)
		return jobCreatedMsg{Resp: resp, Err: err}
	}
}

func (m *jobManagerModel) deleteJob(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		message, err := c.DeleteJob(context.Background(), id)
		return jobDeletedMsg{ID: id, Message: message, Err: err}
	}
}

func (m *jobManagerModel) exportJob(id string, f client.ExportFormat) tea.Cmd {
	c, dir := m.client, m.exportDir
	return func() tea.Msg {
		data, err := c.ExportResults(context.Background(), id, f)
		if err != nil {
			return jobExportedMsg{Err: err}
		}
		path, err := writeExport(dir, fmt.Sprintf("job-%s-results.%s", id, f), data)
		return jobExportedMsg{Path: path, Err: err}
	}
}

func (m *jobManagerModel) View() string {
	if !m.loaded {
		return renderLoadingState("Loading jobs...")
	}
	if m.loadErr != nil && len(m.jobs) == 0 && m.step == jobsStepList {
		return renderErrorView(m.loadErr)
	}

	var body string
	switch m.step {
	case jobsStepList:
		body = m.renderList()
	case jobsStepDetail:
		body = m.renderDetail()
	case jobsStepCreate:
		body = renderTitle("New Job") + m.form.View()
	case jobsStepConfirm:
		body = m.renderConfirm()
	case jobsStepExport:
		body = m.renderExportPrompt()
	}

	var b strings.Builder
	b.WriteString(body)
	if m.busy {
		b.WriteString(infoStyle.Render("Working...") + "\n")
	}
	if m.loadErr != nil && len(m.jobs) > 0 {
		b.WriteString(renderInlineError(m.loadErr) + "\n")
	}
	b.WriteString(m.notice.View())
	return b.String()
}

func (m *jobManagerModel) renderList() string {
	var b strings.Builder

	filter := "all"
	if f := jobStatusFilters[m.filter]; f != "" {
		filter = string(f)
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Filter: %s • %d job(s) • refreshing every %s",
		filter, m.pagination.Total, m.poll.Interval())) + "\n\n")

	if len(m.jobs) == 0 {
		b.WriteString(renderEmptyState("No jobs found. Press 'n' to create one."))
		b.WriteString("\n")
		return b.String()
	}

	for i, job := range m.jobs {
		marker := " "
		nameStyle := itemTitleStyle
		if i == m.selected {
			marker = selectedMarkerStyle.Render("→")
			nameStyle = selectedStyle
		}

		b.WriteString(fmt.Sprintf("%s %s  %s  %s %s\n",
			marker,
			nameStyle.Render(format.Truncate(job.Name, 40)),
			renderBadge(string(job.Status), format.StatusClass(job.Status)),
			renderProgressBar(job.Progress.Fraction(), 16),
			format.ProgressText(job.Progress)))
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			idStyle.Render(format.ShortID(job.ID)),
			mutedStyle.Render(fmt.Sprintf("%s • %s • %d profile(s)",
				format.FormatTime(job.CreatedAt), job.ExtractionMode, len(job.ProfileURLs)))))
	}

	if m.pagination.HasMore {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("\n  showing %d of %d", len(m.jobs), m.pagination.Total)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("(Enter details • n new • d cancel/remove • e export • f filter • r refresh • Esc back)") + "\n")
	return b.String()
}

func (m *jobManagerModel) renderDetail() string {
	job := m.jobByID(m.targetID)
	if job == nil {
		return renderEmptyState("This job is no longer listed.") + "\n" + helpStyle.Render("(Press Esc to go back)") + "\n"
	}

	var b strings.Builder
	b.WriteString(renderTitle(job.Name))
	b.WriteString(renderField("ID", idStyle.Render(job.ID)))
	b.WriteString(renderField("Status", renderBadge(string(job.Status), format.StatusClass(job.Status))))
	b.WriteString(renderField("Progress", renderProgressBar(job.Progress.Fraction(), 30)+" "+format.ProgressText(job.Progress)))
	if job.Progress.Failed > 0 {
		b.WriteString(renderField("Failed", errorStyle.Render(fmt.Sprintf("%d", job.Progress.Failed))))
	}
	if job.Progress.Current > 0 {
		b.WriteString(renderField("Current", fmt.Sprintf("profile %d of %d", job.Progress.Current, job.Progress.Total)))
	}
	b.WriteString(renderField("Mode", string(job.ExtractionMode)))
	b.WriteString(renderField("Concurrency", fmt.Sprintf("%d", job.Concurrency)))
	if job.TargetDate != "" {
		b.WriteString(renderField("Target date", job.TargetDate))
	}
	b.WriteString(renderField("Created", format.FormatTime(job.CreatedAt)))
	if job.StartedAt != nil {
		b.WriteString(renderField("Started", format.FormatTime(*job.StartedAt)))
	}
	if job.CompletedAt != nil {
		b.WriteString(renderField("Completed", format.FormatTime(*job.CompletedAt)))
	}
	if job.Error != "" {
		b.WriteString(fieldLabelStyle.Render("Error:") + "\n")
		b.WriteString(errorStyle.Render(wrapText(job.Error, 70, "  ")))
	}

	b.WriteString("\n" + boldStyle.Render("Profiles:") + "\n")
	for _, u := range job.ProfileURLs {
		b.WriteString("  " + urlStyle.Render(u) + "\n")
	}

	if len(job.Results) > 0 {
		b.WriteString("\n" + boldStyle.Render(fmt.Sprintf("Results (%d):", len(job.Results))) + "\n")
		for _, r := range job.Results {
			if !r.Success {
				b.WriteString(fmt.Sprintf("  %s %s  %s\n", errorStyle.Render("✗"), r.ProfileName(), mutedStyle.Render(r.Error)))
				continue
			}
			stats := format.ComputeSummaryStats(r.Data)
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", successStyle.Render("✓"), r.ProfileName(),
				mutedStyle.Render(fmt.Sprintf("%d reels, %s views", stats.TotalReels, format.FormatViewCount(stats.TotalViews)))))
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("(d cancel/remove • e export • r refresh • Esc back)") + "\n")
	return b.String()
}

func (m *jobManagerModel) targetName() string {
	if job := m.jobByID(m.targetID); job != nil {
		return job.Name
	}
	return format.ShortID(m.targetID)
}

func (m *jobManagerModel) renderConfirm() string {
	var b strings.Builder
	b.WriteString(renderTitle("Cancel / Remove Job"))
	b.WriteString(renderWarning("Active jobs are cancelled; finished jobs may be removed by the server.") + "\n\n")
	b.WriteString(boldStyle.Render("Job:") + " " + itemTitleStyle.Render(m.targetName()) + "\n\n")
	b.WriteString(boldStyle.Render("Confirm (y/N):") + " " + m.confirm.View() + "\n\n")
	b.WriteString(helpStyle.Render("(Press Enter to confirm, Esc to cancel)") + "\n")
	return b.String()
}

func (m *jobManagerModel) renderExportPrompt() string {
	var b strings.Builder
	b.WriteString(renderTitle("Export Results"))
	b.WriteString(boldStyle.Render("Job:") + " " + itemTitleStyle.Render(m.targetName()) + "\n")
	b.WriteString(renderField("Directory", m.exportDir))
	b.WriteString("\n")
	b.WriteString("  " + selectedMarkerStyle.Render("j)") + " JSON\n")
	b.WriteString("  " + selectedMarkerStyle.Render("c)") + " CSV\n\n")
	b.WriteString(helpStyle.Render("(Any other key cancels)") + "\n")
	return b.String()
}
