package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"reels-dash-go/pkg/models"
)

// newTestServer serves a fixed body for every request and counts hits.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestNewClientTrimsBaseURL(t *testing.T) {
	c := NewClient("http://localhost:3001/")
	if c.BaseURL() != "http://localhost:3001" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
	if NewClient("").BaseURL() != DefaultBaseURL {
		t.Errorf("empty base url should fall back to %s", DefaultBaseURL)
	}
}

func TestGetJobsInlineAndWrappedAreEquivalent(t *testing.T) {
	jobs := `[{"id":"j1","name":"first","status":"queued","profileUrls":["https://facebook.com/a","https://facebook.com/b"],"concurrency":2,"extractionMode":"profile","createdAt":"2024-05-01T10:00:00Z","progress":{"total":2,"completed":0,"failed":0},"results":[]}]`
	pagination := `{"total":1,"limit":50,"offset":0,"hasMore":false}`

	inlineSrv, _ := newTestServer(t, http.StatusOK, `{"success":true,"jobs":`+jobs+`,"pagination":`+pagination+`}`)
	wrappedSrv, _ := newTestServer(t, http.StatusOK, `{"success":true,"data":{"jobs":`+jobs+`,"pagination":`+pagination+`}}`)

	ctx := context.Background()
	inline, err := NewClient(inlineSrv.URL).GetJobs(ctx, models.ListJobsParams{})
	if err != nil {
		t.Fatalf("inline GetJobs: %v", err)
	}
	wrapped, err := NewClient(wrappedSrv.URL).GetJobs(ctx, models.ListJobsParams{})
	if err != nil {
		t.Fatalf("wrapped GetJobs: %v", err)
	}

	if len(inline.Jobs) != 1 || len(wrapped.Jobs) != 1 {
		t.Fatalf("job counts = %d/%d, want 1/1", len(inline.Jobs), len(wrapped.Jobs))
	}
	a, b := inline.Jobs[0], wrapped.Jobs[0]
	if a.ID != b.ID || a.Status != b.Status || len(a.ProfileURLs) != len(b.ProfileURLs) || !a.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("decoded jobs differ: %+v vs %+v", a, b)
	}
	if inline.Pagination != wrapped.Pagination {
		t.Errorf("pagination differs: %+v vs %+v", inline.Pagination, wrapped.Pagination)
	}
}

func TestGetJobsDecodesNumericProgressCurrent(t *testing.T) {
	body := `{"success":true,"jobs":[{"id":"j1","name":"n","status":"processing","profileUrls":["https://facebook.com/a","https://facebook.com/b"],"createdAt":"2024-05-01T10:00:00Z","progress":{"total":2,"completed":0,"failed":0,"current":1}}],"pagination":{"total":1,"limit":50,"offset":0,"hasMore":false}}`
	srv, _ := newTestServer(t, http.StatusOK, body)

	list, err := NewClient(srv.URL).GetJobs(context.Background(), models.ListJobsParams{})
	if err != nil {
		t.Fatalf("GetJobs: %v", err)
	}
	if len(list.Jobs) != 1 || list.Jobs[0].Progress.Current != 1 {
		t.Errorf("progress = %+v, want current 1", list.Jobs)
	}
}

func TestGetResultsDecodesFractionalViewCount(t *testing.T) {
	body := `{"success":true,"results":[{"profileId":"p1","profileUrl":"https://facebook.com/a","success":true,"timestamp":"t","data":{"profile":{"name":"A"},"reels":[{"index":1,"reelId":"r1","url":"u","viewCountNumeric":1100.0000000000002,"source":"timeline","hasDate":false,"hasViews":true,"complete":false}],"summary":{}}}],"pagination":{"total":1,"limit":50,"offset":0,"hasMore":false}}`
	srv, _ := newTestServer(t, http.StatusOK, body)

	list, err := NewClient(srv.URL).GetResults(context.Background(), models.ListResultsParams{})
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	reels := list.Results[0].Data.Reels
	if len(reels) != 1 || reels[0].ViewCountNumeric == nil || *reels[0].ViewCountNumeric < 1100 {
		t.Errorf("reels = %+v", reels)
	}
}

func TestGetJobsQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `{"success":true,"jobs":[]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.GetJobs(context.Background(), models.ListJobsParams{}); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}

	if _, err := c.GetJobs(context.Background(), models.ListJobsParams{Status: models.JobStatusFailed, Limit: 10, Offset: 20}); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "limit=10&offset=20&status=failed" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestHTTPErrorCarriesStatusAndBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError, `{"success":false,"error":"boom"}`)

	_, err := NewClient(srv.URL).GetStats(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsHTTP(err) {
		t.Fatalf("expected http kind, got %v", err)
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatal("expected *RequestError")
	}
	if reqErr.StatusCode != 500 {
		t.Errorf("status = %d, want 500", reqErr.StatusCode)
	}
	if !strings.Contains(reqErr.Body, "boom") || reqErr.Message != "boom" {
		t.Errorf("body = %q, message = %q", reqErr.Body, reqErr.Message)
	}
	if !strings.Contains(err.Error(), "API error (500): boom") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).GetStatus(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("expected network kind, got %v", err)
	}
	if UserMessage(err) == "" {
		t.Error("expected a user message")
	}
}

func TestMalformedBaseURLIsRequestError(t *testing.T) {
	c := NewClient("http://bad host:3001")
	ctx := context.Background()

	_, err := c.GetStatus(ctx)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || !IsRequest(err) {
		t.Fatalf("GetStatus err = %#v, want request kind", err)
	}
	if reqErr.Op == "" {
		t.Errorf("op not set: %+v", reqErr)
	}

	if _, err := c.ExportResults(ctx, "j1", ExportCSV); !IsRequest(err) {
		t.Errorf("ExportResults err = %v, want request kind", err)
	}
	if UserMessage(err) == err.Error() {
		t.Error("expected a friendly message")
	}
}

func TestTimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, WithTimeout(50*time.Millisecond)).GetStatus(context.Background())
	if !IsNetwork(err) {
		t.Fatalf("expected network kind, got %v", err)
	}
}

func TestInvalidResponse(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `<html>not json</html>`)

	_, err := NewClient(srv.URL).GetStats(context.Background())
	if !IsInvalidResponse(err) {
		t.Fatalf("expected invalid_response kind, got %v", err)
	}
}

func TestGetStatsInline(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"success":true,"stats":{"totalJobs":4,"activeJobs":1,"averageReelsPerProfile":"2.50","extractionModeStats":{"profile":3,"main":1,"comprehensive":0}},"timestamp":"2024-05-01T10:00:00Z"}`)

	resp, err := NewClient(srv.URL).GetStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Stats.TotalJobs != 4 || resp.Stats.AverageReelsPerProfile != "2.50" || resp.Stats.ExtractionModeStats.Profile != 3 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	if resp.Timestamp.IsZero() {
		t.Error("timestamp not decoded")
	}
}

func TestGetResultRawAndWrapped(t *testing.T) {
	raw := `{"profileId":"p1","profileUrl":"https://facebook.com/a","extractionMode":"profile","success":true,"timestamp":"t","data":{"profile":{"name":"A","url":"https://facebook.com/a"},"reels":[{"index":1,"reelId":"r1","url":"u","source":"timeline","hasDate":true,"hasViews":false,"complete":false}],"summary":{"totalReelsFound":1}}}`
	for name, body := range map[string]string{
		"raw":     raw,
		"wrapped": `{"success":true,"data":` + raw + `}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusOK, body)
			res, err := NewClient(srv.URL).GetResult(context.Background(), "p1")
			if err != nil {
				t.Fatal(err)
			}
			if res.ProfileURL != "https://facebook.com/a" || res.Data == nil || len(res.Data.Reels) != 1 {
				t.Errorf("result = %+v", res)
			}
			if res.ProfileName() != "A" {
				t.Errorf("ProfileName() = %q", res.ProfileName())
			}
		})
	}
}

func TestDeleteJobReturnsServerMessage(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		io.WriteString(w, `{"success":true,"message":"Job cancelled successfully"}`)
	}))
	defer srv.Close()

	msg, err := NewClient(srv.URL).DeleteJob(context.Background(), "job-1")
	if err != nil {
		t.Fatal(err)
	}
	if method != http.MethodDelete || path != "/api/jobs/job-1" {
		t.Errorf("request = %s %s", method, path)
	}
	if msg != "Job cancelled successfully" {
		t.Errorf("message = %q", msg)
	}
}

func TestExportResults(t *testing.T) {
	var gotPath, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotFormat = r.URL.Path, r.URL.Query().Get("format")
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, "a,b\n1,2")
	}))
	defer srv.Close()

	data, err := NewClient(srv.URL).ExportResults(context.Background(), "job-1", ExportCSV)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a,b\n1,2" {
		t.Errorf("data = %q", data)
	}
	if gotPath != "/api/export/job-1" || gotFormat != "csv" {
		t.Errorf("request = %s format=%s", gotPath, gotFormat)
	}
}

func TestExportResultsError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, `{"success":false,"error":"Job not found"}`)

	_, err := NewClient(srv.URL).ExportResults(context.Background(), "nope", ExportJSON)
	if !IsExport(err) {
		t.Fatalf("expected export kind, got %v", err)
	}
	if StatusCode(err) != http.StatusNotFound {
		t.Errorf("status = %d", StatusCode(err))
	}
}

func TestValidationFailsBeforeRequest(t *testing.T) {
	srv, hits := newTestServer(t, http.StatusOK, `{}`)
	c := NewClient(srv.URL)
	ctx := context.Background()

	cases := map[string]func() error{
		"blank name": func() error {
			_, err := c.CreateJob(ctx, models.CreateJobParams{JobName: "  ", ProfileURLs: []string{"https://facebook.com/a"}})
			return err
		},
		"no urls": func() error {
			_, err := c.CreateJob(ctx, models.CreateJobParams{JobName: "x", ProfileURLs: []string{" ", ""}})
			return err
		},
		"bad concurrency": func() error {
			_, err := c.CreateJob(ctx, models.CreateJobParams{JobName: "x", ProfileURLs: []string{"u"}, Concurrency: -1})
			return err
		},
		"bad mode": func() error {
			_, err := c.CreateJob(ctx, models.CreateJobParams{JobName: "x", ProfileURLs: []string{"u"}, ExtractionMode: "everything"})
			return err
		},
		"validate empty": func() error {
			_, err := c.ValidateProfiles(ctx, nil)
			return err
		},
		"export no id": func() error {
			_, err := c.ExportResults(ctx, "", ExportJSON)
			return err
		},
		"export bad format": func() error {
			_, err := c.ExportResults(ctx, "j", "xml")
			return err
		},
		"job no id": func() error {
			_, err := c.GetJob(ctx, "")
			return err
		},
	}

	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			if err := call(); !IsValidation(err) {
				t.Errorf("expected validation kind, got %v", err)
			}
		})
	}
	if n := atomic.LoadInt32(hits); n != 0 {
		t.Errorf("server received %d requests, want 0", n)
	}
}

func TestCreateJobSendsTrimmedPayload(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"jobId":"abc","message":"Job created"}`)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).CreateJob(context.Background(), models.CreateJobParams{
		JobName:     " weekly ",
		ProfileURLs: []string{" https://facebook.com/a ", "", "https://facebook.com/b"},
		Concurrency: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.JobID != "abc" {
		t.Errorf("job id = %q", resp.JobID)
	}
	want := `{"jobName":"weekly","profileUrls":["https://facebook.com/a","https://facebook.com/b"],"concurrency":3}`
	if body != want {
		t.Errorf("body = %s\nwant  %s", body, want)
	}
}

func TestGetLogsDefaultsToFifty(t *testing.T) {
	var lines string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lines = r.URL.Query().Get("lines")
		io.WriteString(w, `{"success":true,"logs":["a","b"],"totalLines":2,"requestedLines":50}`)
	}))
	defer srv.Close()

	logs, err := NewClient(srv.URL).GetLogs(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if lines != "50" {
		t.Errorf("lines = %q, want 50", lines)
	}
	if len(logs.Logs) != 2 || logs.Logs[1] != "b" {
		t.Errorf("logs = %v", logs.Logs)
	}
}

func TestGetMonitoringHealthSystemLoad(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"success":true,"status":"healthy","timestamp":"2024-05-01T10:00:00Z","uptime":3725,"memory":{"rss":1048576,"heapTotal":200,"heapUsed":50,"external":0},"activeJobs":2,"systemLoad":[0.5,0.25,0.1]}`)

	h, err := NewClient(srv.URL).GetMonitoringHealth(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if h.Status != "healthy" || h.ActiveJobs != 2 || h.Memory.RSS != 1048576 {
		t.Errorf("health = %+v", h)
	}
	loads, ok := h.LoadAverages()
	if !ok || len(loads) != 3 || loads[0] != 0.5 {
		t.Errorf("loads = %v ok=%v", loads, ok)
	}
	if h.Memory.HeapFraction() != 0.25 {
		t.Errorf("heap fraction = %v", h.Memory.HeapFraction())
	}
}
