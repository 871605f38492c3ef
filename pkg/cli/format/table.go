package format

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"reels-dash-go/pkg/models"
)

const timeLayout = "2006-01-02 15:04"

// Truncate shortens s to max runes, ending in "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// ShortID keeps the first eight characters of an identifier.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// FormatTime renders a timestamp in local time, or "-" when unset.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// ProgressText renders "done/total (n%)" for a job.
func ProgressText(p models.Progress) string {
	if p.Total == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d (%s)", p.Done(), p.Total, FormatPercentage(p.Fraction()))
}

// JobsTable formats jobs as a table for CLI output
func JobsTable(jobs []models.Job) string {
	if len(jobs) == 0 {
		return "No jobs found.\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tStatus\tMode\tProfiles\tProgress\tCreated")
	fmt.Fprintln(w, "──\t────\t──────\t────\t────────\t────────\t───────")
	for _, job := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			ShortID(job.ID),
			Truncate(job.Name, 30),
			job.Status,
			job.ExtractionMode,
			len(job.ProfileURLs),
			ProgressText(job.Progress),
			FormatTime(job.CreatedAt),
		)
	}
	w.Flush()
	fmt.Fprintf(&b, "\nTotal: %d job(s)\n", len(jobs))
	return b.String()
}

// JobDetail formats a single job with its profile list.
func JobDetail(job *models.Job) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", job.ID)
	fmt.Fprintf(w, "Name:\t%s\n", job.Name)
	fmt.Fprintf(w, "Status:\t%s\n", StatusClass(job.Status).Sprint(string(job.Status)))
	fmt.Fprintf(w, "Mode:\t%s\n", job.ExtractionMode)
	fmt.Fprintf(w, "Concurrency:\t%d\n", job.Concurrency)
	if job.TargetDate != "" {
		fmt.Fprintf(w, "Target date:\t%s\n", job.TargetDate)
	}
	fmt.Fprintf(w, "Progress:\t%s\n", ProgressText(job.Progress))
	if job.Progress.Current > 0 {
		fmt.Fprintf(w, "Current:\tprofile %d of %d\n", job.Progress.Current, job.Progress.Total)
	}
	fmt.Fprintf(w, "Created:\t%s\n", FormatTime(job.CreatedAt))
	if job.StartedAt != nil {
		fmt.Fprintf(w, "Started:\t%s\n", FormatTime(*job.StartedAt))
	}
	if job.CompletedAt != nil {
		fmt.Fprintf(w, "Completed:\t%s\n", FormatTime(*job.CompletedAt))
	}
	if job.Error != "" {
		fmt.Fprintf(w, "Error:\t%s\n", ClassError.Sprint(job.Error))
	}
	w.Flush()

	b.WriteString("\nProfiles:\n")
	for _, u := range job.ProfileURLs {
		fmt.Fprintf(&b, "  %s\n", u)
	}
	if len(job.Results) > 0 {
		b.WriteString("\n")
		b.WriteString(ResultsTable(job.Results))
	}
	return b.String()
}

// ResultsTable formats results as a table for CLI output
func ResultsTable(results []models.Result) string {
	if len(results) == 0 {
		return "No results found.\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Profile ID\tProfile\tMode\tOK\tReels\tViews\tTimestamp")
	fmt.Fprintln(w, "──────────\t───────\t────\t──\t─────\t─────\t─────────")
	for _, r := range results {
		s := ComputeSummaryStats(r.Data)
		ok := "no"
		if r.Success {
			ok = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			ShortID(r.ProfileID),
			Truncate(r.ProfileName(), 40),
			r.ExtractionMode,
			ok,
			s.TotalReels,
			FormatViewCount(s.TotalViews),
			r.Timestamp,
		)
	}
	w.Flush()
	fmt.Fprintf(&b, "\nTotal: %d result(s)\n", len(results))
	return b.String()
}

// ResultDetail formats a single result with its summary and reel table.
func ResultDetail(r *models.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile:  %s\n", r.ProfileName())
	fmt.Fprintf(&b, "URL:      %s\n", r.ProfileURL)
	fmt.Fprintf(&b, "Mode:     %s\n", r.ExtractionMode)
	if !r.Success {
		fmt.Fprintf(&b, "Error:    %s\n", ClassError.Sprint(r.Error))
		return b.String()
	}

	s := ComputeSummaryStats(r.Data)
	fmt.Fprintf(&b, "Reels:    %d (complete %d, with date %d, with views %d)\n",
		s.TotalReels, s.CompleteReels, s.ReelsWithDate, s.ReelsWithViews)
	fmt.Fprintf(&b, "Views:    %s total, %s average\n", FormatViewCount(s.TotalViews), FormatViewCount(s.AverageViews))
	fmt.Fprintf(&b, "Sections: timeline %d, profile reels %d, main reels %d, combined %d\n",
		s.TimelineReels, s.ProfileReelsSection, s.MainReelsSection, s.CombinedReels)
	if r.Data != nil && r.Data.Summary.TargetDate != "" {
		found := "not reached"
		if r.Data.Summary.TargetDateFound {
			found = "reached"
		}
		fmt.Fprintf(&b, "Target:   %s (%s)\n", r.Data.Summary.TargetDate, found)
	}
	if r.Data != nil && len(r.Data.Reels) > 0 {
		b.WriteString("\n")
		b.WriteString(ReelsTable(r.Data.Reels))
	}
	return b.String()
}

// ReelsTable formats reels as a table for CLI output
func ReelsTable(reels []models.Reel) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tReel ID\tDate\tViews\tSource\tComplete\tURL")
	for _, reel := range reels {
		date := reel.DateText
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			reel.Index,
			reel.ReelID,
			date,
			FormatViewText(reel.ViewCount, reel.ViewCountNumeric),
			reel.Source,
			yesNo(reel.Complete),
			reel.URL,
		)
	}
	w.Flush()
	return b.String()
}

// StatsSummary formats the aggregate snapshot.
func StatsSummary(s models.Stats) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total jobs:\t%d\n", s.TotalJobs)
	fmt.Fprintf(w, "Active jobs:\t%s\n", ClassInfo.Sprint(fmt.Sprint(s.ActiveJobs)))
	fmt.Fprintf(w, "Completed jobs:\t%s\n", ClassSuccess.Sprint(fmt.Sprint(s.CompletedJobs)))
	fmt.Fprintf(w, "Failed jobs:\t%s\n", ClassError.Sprint(fmt.Sprint(s.FailedJobs)))
	fmt.Fprintf(w, "Profiles processed:\t%s\n", FormatNumber(s.TotalProfilesProcessed))
	fmt.Fprintf(w, "Reels found:\t%s\n", FormatNumber(s.TotalReelsFound))
	fmt.Fprintf(w, "Avg reels/profile:\t%s\n", s.AverageReelsPerProfile)
	fmt.Fprintf(w, "Modes:\tprofile %d, main %d, comprehensive %d\n",
		s.ExtractionModeStats.Profile, s.ExtractionModeStats.Main, s.ExtractionModeStats.Comprehensive)
	fmt.Fprintf(w, "Last 24h:\t%d jobs created, %d profiles processed\n",
		s.Last24Hours.JobsCreated, s.Last24Hours.ProfilesProcessed)
	w.Flush()
	return b.String()
}

// HealthSummary formats a monitoring health report.
func HealthSummary(h models.Health) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Status:\t%s\n", HealthClass(h.Status).Sprint(h.Status))
	if h.Version != "" {
		fmt.Fprintf(w, "Version:\t%s\n", h.Version)
	}
	fmt.Fprintf(w, "Uptime:\t%s\n", FormatUptime(h.Uptime))
	fmt.Fprintf(w, "Active jobs:\t%d\n", h.ActiveJobs)
	fmt.Fprintf(w, "RSS:\t%s\n", FormatByteSize(h.Memory.RSS))
	fmt.Fprintf(w, "Heap:\t%s / %s (%s)\n",
		FormatByteSize(h.Memory.HeapUsed), FormatByteSize(h.Memory.HeapTotal), FormatPercentage(h.Memory.HeapFraction()))
	fmt.Fprintf(w, "External:\t%s\n", FormatByteSize(h.Memory.External))
	if loads, ok := h.LoadAverages(); ok {
		parts := make([]string, len(loads))
		for i, l := range loads {
			parts[i] = fmt.Sprintf("%.2f", l)
		}
		fmt.Fprintf(w, "Load:\t%s\n", strings.Join(parts, " "))
	}
	fmt.Fprintf(w, "Checked:\t%s\n", FormatTime(h.Timestamp))
	w.Flush()
	return b.String()
}

// ServerConfigSummary formats the scraping service's configuration.
func ServerConfigSummary(c models.ServerConfig) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Max concurrent profiles:\t%d\n", c.MaxConcurrentProfiles)
	fmt.Fprintf(w, "API port:\t%d\n", c.APIPort)
	fmt.Fprintf(w, "Output dir:\t%s\n", c.OutputDir)
	fmt.Fprintf(w, "Log level:\t%s\n", c.LogLevel)
	fmt.Fprintf(w, "Scroll count:\t%d\n", c.ScrollCount)
	fmt.Fprintf(w, "Retry attempts:\t%d\n", c.RetryAttempts)
	fmt.Fprintf(w, "Retry delay:\t%d ms\n", c.RetryDelay)
	fmt.Fprintf(w, "Request timeout:\t%d ms\n", c.RequestTimeout)
	fmt.Fprintf(w, "Page load timeout:\t%d ms\n", c.PageLoadTimeout)
	w.Flush()
	return b.String()
}

// ValidationSummary lists valid then invalid URLs with their errors.
func ValidationSummary(validation map[string]models.ValidationEntry, valid, invalid []string) string {
	var b strings.Builder
	total := len(valid) + len(invalid)
	pct := "N/A"
	if total > 0 {
		pct = FormatPercentage(float64(len(valid)) / float64(total))
	}
	fmt.Fprintf(&b, "%d of %d valid (%s)\n", len(valid), total, pct)
	for _, u := range valid {
		fmt.Fprintf(&b, "  %s %s\n", ClassSuccess.Sprint("✓"), u)
	}
	for _, u := range invalid {
		msg := validation[u].Error
		if msg == "" {
			msg = "invalid"
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", ClassError.Sprint("✗"), u, msg)
	}
	return b.String()
}
