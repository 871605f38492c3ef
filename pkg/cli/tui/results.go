package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/cli/format"
	"reels-dash-go/pkg/cli/logger"
	"reels-dash-go/pkg/config"
	"reels-dash-go/pkg/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	resultsStepList = iota
	resultsStepDetail
)

const resultsNotice = "results"

// resultsViewerModel browses per-profile results a page at a time.
type resultsViewerModel struct {
	client    *client.Client
	exportDir string
	pageSize  int

	results    []models.Result
	pagination models.Pagination
	offset     int
	loaded     bool
	loading    bool
	loadErr    error

	filter    textinput.Model
	filtering bool
	visible   []int
	selected  int
	step      int
	detail    *models.Result

	notice notice
}

// NewResultsViewerModel creates the results viewer flow.
func NewResultsViewerModel(c *client.Client, cfg *config.Config) tea.Model {
	filter := textinput.New()
	filter.Placeholder = "profile name or URL"
	filter.Prompt = "/ "
	filter.CharLimit = 200
	filter.Width = 40

	model := &resultsViewerModel{
		client:    c,
		exportDir: cfg.Dashboard.ExportDir,
		pageSize:  cfg.Dashboard.PageSize,
		filter:    filter,
	}

	return NewViewportWrapper(model, ViewportConfig{
		Title:       "Results",
		ShowHeader:  true,
		ShowFooter:  true,
		UseViewport: true, // Reel tables can be long
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: ResultsHelpContent,
		MinWidth:    60,
		MinHeight:   10,
	})
}

func (m *resultsViewerModel) Init() tea.Cmd {
	return m.fetch(0)
}

func (m *resultsViewerModel) CapturingInput() bool {
	return m.filtering
}

func (m *resultsViewerModel) fetch(offset int) tea.Cmd {
	m.loading = true
	c := m.client
	params := models.ListResultsParams{Limit: m.pageSize, Offset: offset}
	return func() tea.Msg {
		results, err := c.GetResults(context.Background(), params)
		return resultsLoadedMsg{Results: results, Offset: offset, Err: err}
	}
}

// filterResults returns the indexes of results whose profile name or URL
// contains query, ignoring case. An empty query keeps everything.
func filterResults(results []models.Result, query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	idx := make([]int, 0, len(results))
	for i, r := range results {
		if query == "" ||
			strings.Contains(strings.ToLower(r.ProfileName()), query) ||
			strings.Contains(strings.ToLower(r.ProfileURL), query) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m *resultsViewerModel) applyFilter() {
	m.visible = filterResults(m.results, m.filter.Value())
	m.selected = clampSelection(m.selected, len(m.visible))
}

func (m *resultsViewerModel) selectedResult() *models.Result {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return nil
	}
	return &m.results[m.visible[m.selected]]
}

func (m *resultsViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		m.loading = false
		m.loaded = true
		if msg.Err != nil {
			logger.LogError(msg.Err, "results: fetch failed")
			m.loadErr = msg.Err
			if len(m.results) > 0 {
				return m, m.notice.set(resultsNotice, "", msg.Err)
			}
			return m, nil
		}
		m.loadErr = nil
		m.results = msg.Results.Results
		m.pagination = msg.Results.Pagination
		m.offset = msg.Offset
		m.applyFilter()
		return m, nil

	case resultExportedMsg:
		if msg.Err != nil {
			return m, m.notice.set(resultsNotice, "", msg.Err)
		}
		return m, m.notice.set(resultsNotice, "Saved "+msg.Path, nil)

	case noticeExpiredMsg:
		m.notice.expire(msg)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKeys(msg)
		}
		if m.step == resultsStepDetail {
			return m.handleDetailKeys(msg)
		}
		return m.handleListKeys(msg)
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *resultsViewerModel) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *resultsViewerModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if newSelected, handled := handleListNavigation(msg.String(), m.selected, len(m.visible)); handled {
		m.selected = newSelected
		return m, nil
	}
	switch msg.String() {
	case "esc", "b":
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		}
		return m, func() tea.Msg { return MenuNavigationMsg{} }
	case "/":
		m.filtering = true
		return m, m.filter.Focus()
	case "enter":
		if r := m.selectedResult(); r != nil {
			m.detail = r
			m.step = resultsStepDetail
		}
	case "r":
		return m, m.fetch(m.offset)
	case "n":
		if m.pagination.HasMore && !m.loading {
			return m, m.fetch(m.offset + m.pageSize)
		}
	case "p":
		if m.offset > 0 && !m.loading {
			prev := m.offset - m.pageSize
			if prev < 0 {
				prev = 0
			}
			return m, m.fetch(prev)
		}
	case "J":
		return m, m.exportResult(m.selectedResult(), client.ExportJSON)
	case "C":
		return m, m.exportResult(m.selectedResult(), client.ExportCSV)
	}
	return m, nil
}

func (m *resultsViewerModel) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "enter":
		m.step = resultsStepList
		m.detail = nil
	case "J":
		return m, m.exportResult(m.detail, client.ExportJSON)
	case "C":
		return m, m.exportResult(m.detail, client.ExportCSV)
	}
	return m, nil
}

// exportResult writes one result locally, without a server round trip.
func (m *resultsViewerModel) exportResult(r *models.Result, f client.ExportFormat) tea.Cmd {
	if r == nil {
		return nil
	}
	result, dir := *r, m.exportDir
	return func() tea.Msg {
		data, err := encodeResult(&result, f)
		if err != nil {
			return resultExportedMsg{Err: err}
		}
		path, err := writeExport(dir, fmt.Sprintf("result-%s.%s", result.ProfileID, f), data)
		return resultExportedMsg{Path: path, Err: err}
	}
}

// encodeResult renders a single result as indented JSON or as the reel CSV.
func encodeResult(r *models.Result, f client.ExportFormat) ([]byte, error) {
	switch f {
	case client.ExportCSV:
		return []byte(format.ToCSV(r.Data)), nil
	case client.ExportJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode result: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

func (m *resultsViewerModel) View() string {
	if !m.loaded {
		return renderLoadingState("Loading results...")
	}
	if m.loadErr != nil && len(m.results) == 0 {
		return renderErrorView(m.loadErr)
	}

	var b strings.Builder
	if m.step == resultsStepDetail && m.detail != nil {
		b.WriteString(m.renderDetail(m.detail))
	} else {
		b.WriteString(m.renderList())
	}
	b.WriteString(m.notice.View())
	return b.String()
}

func (m *resultsViewerModel) renderList() string {
	var b strings.Builder

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View() + "\n")
	}
	page := fmt.Sprintf("%d-%d of %d", m.offset+1, m.offset+len(m.results), m.pagination.Total)
	if len(m.results) == 0 {
		page = "0 of 0"
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %s • %d match(es)", page, len(m.visible))) + "\n\n")

	if len(m.visible) == 0 {
		if len(m.results) == 0 {
			b.WriteString(renderEmptyState("No results yet."))
		} else {
			b.WriteString(renderEmptyState("No results match the filter."))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, idx := range m.visible {
		r := m.results[idx]
		marker := " "
		nameStyle := itemTitleStyle
		if i == m.selected {
			marker = selectedMarkerStyle.Render("→")
			nameStyle = selectedStyle
		}

		outcome := successStyle.Render("✓")
		detail := ""
		if r.Success {
			s := format.ComputeSummaryStats(r.Data)
			detail = fmt.Sprintf("%d reels • %s views • %s", s.TotalReels, format.FormatViewCount(s.TotalViews), r.ExtractionMode)
		} else {
			outcome = errorStyle.Render("✗")
			detail = format.Truncate(r.Error, 60)
		}

		b.WriteString(fmt.Sprintf("%s %s %s  %s\n", marker, outcome, nameStyle.Render(format.Truncate(r.ProfileName(), 40)), mutedStyle.Render(detail)))
		b.WriteString(fmt.Sprintf("    %s\n", urlStyle.Render(format.Truncate(r.ProfileURL, 70))))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("(Enter details • / filter • n/p page • J/C export • r refresh • Esc back)") + "\n")
	return b.String()
}

func (m *resultsViewerModel) renderDetail(r *models.Result) string {
	var b strings.Builder
	b.WriteString(renderTitle(r.ProfileName()))
	b.WriteString(renderField("URL", urlStyle.Render(r.ProfileURL)))
	b.WriteString(renderField("Profile ID", idStyle.Render(r.ProfileID)))
	b.WriteString(renderField("Mode", string(r.ExtractionMode)))
	if r.Timestamp != "" {
		b.WriteString(renderField("Scraped", r.Timestamp))
	}

	if !r.Success {
		b.WriteString(renderField("Error", errorStyle.Render(r.Error)))
		b.WriteString("\n" + helpStyle.Render("(Esc to go back)") + "\n")
		return b.String()
	}

	s := format.ComputeSummaryStats(r.Data)
	b.WriteString("\n" + boldStyle.Render("Summary") + "\n")
	b.WriteString(renderField("Reels", fmt.Sprintf("%d (complete %d, with date %d, with views %d)",
		s.TotalReels, s.CompleteReels, s.ReelsWithDate, s.ReelsWithViews)))
	b.WriteString(renderField("Views", fmt.Sprintf("%s total • %s average",
		format.FormatViewCount(s.TotalViews), format.FormatViewCount(s.AverageViews))))
	b.WriteString(renderField("Sections", fmt.Sprintf("timeline %d • profile reels %d • main reels %d • combined %d",
		s.TimelineReels, s.ProfileReelsSection, s.MainReelsSection, s.CombinedReels)))
	if r.Data != nil && r.Data.Summary.TargetDate != "" {
		reached := warningStyle.Render("not reached")
		if r.Data.Summary.TargetDateFound {
			reached = successStyle.Render("reached")
		}
		b.WriteString(renderField("Target date", r.Data.Summary.TargetDate+" "+reached))
	}

	b.WriteString("\n" + boldStyle.Render("Reels") + "\n")
	if r.Data == nil || len(r.Data.Reels) == 0 {
		b.WriteString(mutedStyle.Render("No reels found.") + "\n")
	} else {
		b.WriteString(format.ReelsTable(r.Data.Reels))
	}

	b.WriteString("\n" + helpStyle.Render("(J/C export JSON/CSV • ↑/↓ scroll • Esc back)") + "\n")
	return b.String()
}
