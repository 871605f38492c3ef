package tui

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/config"
	"reels-dash-go/pkg/models"
	"reels-dash-go/pkg/stubapi"
	"reels-dash-go/pkg/stubapi/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
)

func newTestAPI(t *testing.T, seed bool) *client.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.New()
	if seed {
		store.Seed(st)
	}
	srv := httptest.NewServer(stubapi.NewServer(st, stubapi.Options{}).Router)
	t.Cleanup(srv.Close)
	return client.NewClient(srv.URL)
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Dashboard.ExportDir = t.TempDir()
	return cfg
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func unwrap(t *testing.T, m tea.Model) tea.Model {
	t.Helper()
	w, ok := m.(*ViewportWrapper)
	if !ok {
		t.Fatalf("expected *ViewportWrapper, got %T", m)
	}
	return w.model
}

func TestJobManagerLoadsAndDisposes(t *testing.T) {
	c := newTestAPI(t, true)
	wrapped := NewJobManagerModel(c, testConfig(t))
	m := unwrap(t, wrapped).(*jobManagerModel)

	m.poll.Start()
	msg := m.fetch()()
	m.Update(msg)
	if len(m.jobs) != 1 || m.loadErr != nil {
		t.Fatalf("jobs = %d, err = %v", len(m.jobs), m.loadErr)
	}

	m.Update(key("enter"))
	if m.step != jobsStepDetail || !strings.Contains(m.View(), "Sample weekly sweep") {
		t.Errorf("enter should open the job detail, step = %d", m.step)
	}

	tick := pollTickMsg{id: m.poll.id, gen: m.poll.gen}
	wrapped.(*ViewportWrapper).Dispose()
	if _, cmd := m.Update(tick); cmd != nil {
		t.Error("a tick arriving after Dispose should be dropped")
	}
}

func TestJobManagerCreateValidatesBeforeSending(t *testing.T) {
	c := newTestAPI(t, false)
	m := unwrap(t, NewJobManagerModel(c, testConfig(t))).(*jobManagerModel)

	m.Update(key("n"))
	if m.step != jobsStepCreate || !m.CapturingInput() {
		t.Fatal("n should open the create form and capture input")
	}
	m.form.concurrency.SetValue("zero")
	m.Update(key("ctrl+s"))
	if m.form.err == nil || m.busy {
		t.Fatal("bad concurrency should be rejected locally")
	}

	m.form.concurrency.SetValue("")
	m.form.name.SetValue("from tui")
	m.form.urls.SetValue("https://facebook.com/a\nhttps://facebook.com/b")
	params, err := m.form.params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if params.Concurrency != defaultFormConcurrency || len(params.ProfileURLs) != 2 {
		t.Errorf("params = %+v", params)
	}

	msg := m.createJob(params)()
	m.Update(msg)
	if m.step != jobsStepList || m.form.err != nil {
		t.Fatalf("create failed: step = %d err = %v", m.step, m.form.err)
	}
	if !strings.Contains(m.notice.text, "Job created successfully") {
		t.Errorf("notice = %q", m.notice.text)
	}
}

func TestJobManagerExportWritesFile(t *testing.T) {
	c := newTestAPI(t, true)
	cfg := testConfig(t)
	m := unwrap(t, NewJobManagerModel(c, cfg)).(*jobManagerModel)
	m.Update(m.fetch()())
	id := m.jobs[0].ID

	msg := m.exportJob(id, client.ExportCSV)().(jobExportedMsg)
	if msg.Err != nil {
		t.Fatalf("export: %v", msg.Err)
	}
	want := filepath.Join(cfg.Dashboard.ExportDir, "job-"+id+"-results.csv")
	if msg.Path != want {
		t.Errorf("path = %q, want %q", msg.Path, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("export file missing: %v", err)
	}
}

func TestFilterResults(t *testing.T) {
	results := []models.Result{
		{ProfileURL: "https://facebook.com/nasa", Data: &models.ResultData{Profile: models.Profile{Name: "NASA"}}},
		{ProfileURL: "https://facebook.com/natgeo"},
		{ProfileURL: "https://facebook.com/other"},
	}

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{0, 1, 2}},
		{"nasa", []int{0}},
		{"NAT", []int{1}},
		{"facebook", []int{0, 1, 2}},
		{"missing", []int{}},
	}
	for _, tt := range tests {
		got := filterResults(results, tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("filter %q = %v, want %v", tt.query, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("filter %q = %v, want %v", tt.query, got, tt.want)
			}
		}
	}
}

func TestEncodeResult(t *testing.T) {
	views := float64(1500)
	r := &models.Result{
		ProfileID:  "p1",
		ProfileURL: "https://facebook.com/a",
		Success:    true,
		Data: &models.ResultData{Reels: []models.Reel{
			{Index: 1, ReelID: "r1", URL: "https://facebook.com/reel/r1", ViewCountNumeric: &views},
		}},
	}

	csv, err := encodeResult(r, client.ExportCSV)
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(string(csv)), "\n"); len(lines) != 2 {
		t.Errorf("csv lines = %d, want 2", len(lines))
	}

	data, err := encodeResult(r, client.ExportJSON)
	if err != nil {
		t.Fatal(err)
	}
	var back models.Result
	if err := json.Unmarshal(data, &back); err != nil || back.ProfileID != "p1" {
		t.Errorf("json export = %s, err = %v", data, err)
	}

	if _, err := encodeResult(r, client.ExportFormat("xml")); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestResultsViewerFilterKeys(t *testing.T) {
	c := newTestAPI(t, true)
	m := unwrap(t, NewResultsViewerModel(c, testConfig(t))).(*resultsViewerModel)
	m.Update(m.fetch(0)())
	if len(m.visible) != 3 {
		t.Fatalf("visible = %d, want 3", len(m.visible))
	}

	m.Update(key("/"))
	if !m.CapturingInput() {
		t.Fatal("/ should start filtering")
	}
	for _, r := range "nasa" {
		m.Update(key(string(r)))
	}
	m.Update(key("enter"))
	if m.CapturingInput() || len(m.visible) != 1 {
		t.Fatalf("filter applied: capturing = %v visible = %d", m.CapturingInput(), len(m.visible))
	}

	m.Update(key("enter"))
	if m.step != resultsStepDetail || !strings.Contains(m.View(), "Summary") {
		t.Error("enter should open the result detail")
	}
}

func TestValidatorCopiesValidURLs(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { copyToClipboard = orig }()

	c := newTestAPI(t, false)
	m := unwrap(t, NewProfileValidatorModel(c)).(*profileValidatorModel)
	m.input.SetValue("https://facebook.com/a, not a url\nhttps://facebook.com/b")

	_, cmd := m.Update(key("ctrl+s"))
	if cmd == nil || m.editing {
		t.Fatal("ctrl+s should leave the input and validate")
	}
	m.Update(cmd())
	if m.result == nil {
		t.Fatalf("no result, err = %v", m.err)
	}
	if len(m.result.ValidURLs) != 2 || len(m.result.InvalidURLs) != 1 {
		t.Fatalf("partition = %+v", m.result)
	}

	m.Update(key("c"))
	if copied != "https://facebook.com/a\nhttps://facebook.com/b" {
		t.Errorf("clipboard = %q", copied)
	}

	m.Update(key("x"))
	if m.result != nil || m.input.Value() != "" || !m.editing {
		t.Error("x should clear input and results")
	}
}

func TestValidatorClipboardFailure(t *testing.T) {
	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no display") }
	defer func() { copyToClipboard = orig }()

	m := &profileValidatorModel{result: &client.ValidationResult{ValidURLs: []string{"u"}}}
	m.copyValid()
	if m.notice.err == nil || !strings.Contains(m.notice.err.Error(), "no display") {
		t.Errorf("notice err = %v", m.notice.err)
	}
}

func TestHealthFailureShowsPlaceholder(t *testing.T) {
	cfg := testConfig(t)
	m := unwrap(t, NewHealthMonitorModel(client.NewClient("http://127.0.0.1:1"), cfg)).(*healthMonitorModel)

	m.Update(healthLoadedMsg{Health: &models.Health{Status: "healthy"}})
	m.Update(healthLoadedMsg{Err: errors.New("boom")})
	if m.health != nil {
		t.Error("a failed check must not keep the previous snapshot")
	}
	if view := m.View(); !strings.Contains(view, "unhealthy") || !strings.Contains(view, "Unable to connect to API") {
		t.Errorf("view missing placeholder:\n%s", view)
	}
}

func TestHealthAutoRefreshToggle(t *testing.T) {
	c := newTestAPI(t, false)
	m := unwrap(t, NewHealthMonitorModel(c, testConfig(t))).(*healthMonitorModel)

	m.Update(m.fetchHealth()())
	if m.health == nil || m.health.Status != "healthy" {
		t.Fatalf("health = %+v, err = %v", m.health, m.healthErr)
	}

	m.Update(key("a"))
	if !m.poll.Active() {
		t.Fatal("a should start auto-refresh")
	}
	tick := pollTickMsg{id: m.poll.id, gen: m.poll.gen}
	m.Update(key("a"))
	if m.poll.Active() {
		t.Fatal("second a should stop auto-refresh")
	}
	if _, cmd := m.Update(tick); cmd != nil {
		t.Error("tick after toggling off should be dropped")
	}
}

func TestRootMenuNavigationDisposesFlow(t *testing.T) {
	c := newTestAPI(t, false)
	root := NewRootModel(c, testConfig(t)).(*rootModel)

	root.Update(key("1"))
	if !root.IsDelegating() {
		t.Fatal("1 should open the job manager")
	}
	jobs := unwrap(t, root.current).(*jobManagerModel)
	jobs.poll.Start()

	root.Update(MenuNavigationMsg{})
	if root.IsDelegating() {
		t.Error("menu navigation should close the flow")
	}
	if jobs.poll.Active() {
		t.Error("closing a flow should dispose its poller")
	}
}

func TestRootOfflineBanner(t *testing.T) {
	root := NewRootModel(client.NewClient("http://127.0.0.1:1"), testConfig(t)).(*rootModel)
	root.Update(statusLoadedMsg{Err: errors.New("dial tcp: refused")})
	root.Update(statsLoadedMsg{Err: errors.New("dial tcp: refused")})

	view := root.View()
	if !strings.Contains(view, "offline") || !strings.Contains(view, "Unable to connect to API") {
		t.Errorf("view missing offline banner:\n%s", view)
	}
}

func TestRootKeepsStatsOnFailure(t *testing.T) {
	root := NewRootModel(client.NewClient("http://127.0.0.1:1"), testConfig(t)).(*rootModel)
	root.Update(statsLoadedMsg{Stats: &models.StatsResponse{Stats: models.Stats{TotalJobs: 7}}})
	root.Update(statsLoadedMsg{Err: errors.New("timeout")})

	if root.stats == nil || root.stats.TotalJobs != 7 {
		t.Errorf("stats = %+v, want previous snapshot kept", root.stats)
	}
}

func TestNoticeExpiry(t *testing.T) {
	var n notice
	n.set("a", "first", nil)
	stale := noticeExpiredMsg{owner: "a", seq: n.seq}
	n.set("a", "second", nil)

	n.expire(stale)
	if n.text != "second" {
		t.Errorf("stale expiry cleared a newer notice")
	}
	n.expire(noticeExpiredMsg{owner: "a", seq: n.seq})
	if n.text != "" {
		t.Errorf("current expiry should clear the notice")
	}
}
