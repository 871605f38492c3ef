package store

import (
	"errors"
	"testing"
	"time"

	"reels-dash-go/pkg/models"
)

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestCreateJobDefaults(t *testing.T) {
	s := New()
	job := s.CreateJob(models.CreateJobParams{
		JobName:     " weekly ",
		ProfileURLs: []string{"https://facebook.com/a", "https://facebook.com/b"},
	})

	if job.Status != models.JobStatusQueued {
		t.Errorf("status = %q, want queued", job.Status)
	}
	if job.Name != "weekly" {
		t.Errorf("name = %q", job.Name)
	}
	if job.Concurrency != DefaultConcurrency {
		t.Errorf("concurrency = %d, want %d", job.Concurrency, DefaultConcurrency)
	}
	if job.ExtractionMode != models.ExtractionModeProfile {
		t.Errorf("mode = %q, want profile", job.ExtractionMode)
	}
	if job.Progress.Total != 2 {
		t.Errorf("progress total = %d, want 2", job.Progress.Total)
	}
}

func TestListJobsNewestFirstAndPaginated(t *testing.T) {
	s := New()
	s.now = fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var ids []string
	for i := 0; i < 3; i++ {
		ids = append(ids, s.CreateJob(models.CreateJobParams{JobName: "j", ProfileURLs: []string{"u"}}).ID)
	}

	jobs, page := s.ListJobs("", 2, 0)
	if len(jobs) != 2 || jobs[0].ID != ids[2] || jobs[1].ID != ids[1] {
		t.Fatalf("unexpected order: %+v", jobs)
	}
	if !page.HasMore || page.Total != 3 {
		t.Errorf("pagination = %+v", page)
	}

	jobs, page = s.ListJobs("", 2, 2)
	if len(jobs) != 1 || jobs[0].ID != ids[0] || page.HasMore {
		t.Errorf("second page = %+v %+v", jobs, page)
	}

	jobs, _ = s.ListJobs("", 10, 5)
	if len(jobs) != 0 {
		t.Errorf("offset past end returned %d jobs", len(jobs))
	}
}

func TestDeleteJobCancelsActiveAndRemovesFinished(t *testing.T) {
	s := New()
	job := s.CreateJob(models.CreateJobParams{JobName: "j", ProfileURLs: []string{"u"}})

	cancelled, err := s.DeleteJob(job.ID)
	if err != nil || !cancelled {
		t.Fatalf("first delete = %v, %v; want cancelled", cancelled, err)
	}
	got, err := s.GetJob(job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.JobStatusCancelled || got.CompletedAt == nil {
		t.Errorf("job after cancel = %+v", got)
	}

	cancelled, err = s.DeleteJob(job.ID)
	if err != nil || cancelled {
		t.Fatalf("second delete = %v, %v; want removed", cancelled, err)
	}
	if _, err := s.GetJob(job.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetJob after removal err = %v, want ErrNotFound", err)
	}
	if _, err := s.DeleteJob("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing err = %v", err)
	}
}

func TestCopiesAreIndependent(t *testing.T) {
	s := New()
	job := s.CreateJob(models.CreateJobParams{JobName: "j", ProfileURLs: []string{"u"}})
	job.ProfileURLs[0] = "changed"

	got, _ := s.GetJob(job.ID)
	if got.ProfileURLs[0] != "u" {
		t.Errorf("store was mutated through a returned copy")
	}
}

func TestSeedResultsAndStats(t *testing.T) {
	s := New()
	Seed(s)

	results, page := s.ListResults("", "", 0, 0)
	if len(results) != 3 || page.Total != 3 {
		t.Fatalf("results = %d, total = %d; want 3", len(results), page.Total)
	}

	one, err := s.GetResult(results[0].ProfileID)
	if err != nil || one.ProfileURL != results[0].ProfileURL {
		t.Errorf("GetResult = %+v, %v", one, err)
	}

	filtered, _ := s.ListResults("", results[2].ProfileURL, 0, 0)
	if len(filtered) != 1 || filtered[0].Success {
		t.Errorf("filter by profile url = %+v", filtered)
	}

	st := s.Stats()
	if st.TotalJobs != 1 || st.CompletedJobs != 1 || st.ActiveJobs != 0 {
		t.Errorf("job counts = %+v", st)
	}
	if st.TotalProfilesProcessed != 3 {
		t.Errorf("profiles processed = %d, want 3", st.TotalProfilesProcessed)
	}
	if st.TotalReelsFound != 7 {
		t.Errorf("reels found = %d, want 7", st.TotalReelsFound)
	}
	if st.AverageReelsPerProfile != "2.33" {
		t.Errorf("average = %q, want 2.33", st.AverageReelsPerProfile)
	}
	if st.ExtractionModeStats.Comprehensive != 1 {
		t.Errorf("mode stats = %+v", st.ExtractionModeStats)
	}
}

func TestEmptyStats(t *testing.T) {
	st := New().Stats()
	if st.AverageReelsPerProfile != "0" || st.TotalJobs != 0 {
		t.Errorf("empty stats = %+v", st)
	}
}
