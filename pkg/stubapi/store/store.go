package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"reels-dash-go/pkg/models"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

const (
	DefaultLimit       = 50
	DefaultConcurrency = 3
)

// Store keeps jobs and their results in memory. It never runs jobs; a new
// job stays queued until something else moves it along.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
	now  func() time.Time
}

func New() *Store {
	return &Store{
		jobs: make(map[string]*models.Job),
		now:  time.Now,
	}
}

// CreateJob records a queued job and returns a copy of it.
func (s *Store) CreateJob(p models.CreateJobParams) models.Job {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	mode := p.ExtractionMode
	if mode == "" {
		mode = models.ExtractionModeProfile
	}
	name := strings.TrimSpace(p.JobName)
	if name == "" {
		name = fmt.Sprintf("Job %s", s.now().Format("2006-01-02 15:04"))
	}

	job := &models.Job{
		ID:             uuid.NewString(),
		Name:           name,
		Status:         models.JobStatusQueued,
		ProfileURLs:    append([]string(nil), p.ProfileURLs...),
		TargetDate:     p.TargetDate,
		Concurrency:    concurrency,
		ExtractionMode: mode,
		CreatedAt:      s.now().UTC(),
		Progress:       models.Progress{Total: len(p.ProfileURLs)},
		Results:        []models.Result{},
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return copyJob(job)
}

// PutJob inserts or replaces a job as given. Used for seeding.
func (s *Store) PutJob(job models.Job) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Results == nil {
		job.Results = []models.Result{}
	}
	s.mu.Lock()
	s.jobs[job.ID] = &job
	s.mu.Unlock()
}

// ListJobs returns jobs newest first, filtered by status when set.
func (s *Store) ListJobs(status models.JobStatus, limit, offset int) ([]models.Job, models.Pagination) {
	return paginate(s.sortedJobs(status), limit, offset)
}

func (s *Store) sortedJobs(status models.JobStatus) []models.Job {
	s.mu.RLock()
	all := make([]models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if status != "" && j.Status != status {
			continue
		}
		all = append(all, copyJob(j))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, k int) bool {
		if all[i].CreatedAt.Equal(all[k].CreatedAt) {
			return all[i].ID < all[k].ID
		}
		return all[i].CreatedAt.After(all[k].CreatedAt)
	})
	return all
}

func (s *Store) GetJob(id string) (models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return models.Job{}, ErrNotFound
	}
	return copyJob(j), nil
}

// DeleteJob cancels a queued or processing job and removes any other.
// cancelled reports which of the two happened.
func (s *Store) DeleteJob(id string) (cancelled bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return false, ErrNotFound
	}
	if j.Status.IsActive() {
		j.Status = models.JobStatusCancelled
		now := s.now().UTC()
		j.CompletedAt = &now
		return true, nil
	}
	delete(s.jobs, id)
	return false, nil
}

// ListResults flattens results across jobs, newest job first.
func (s *Store) ListResults(jobID, profileURL string, limit, offset int) ([]models.Result, models.Pagination) {
	var results []models.Result
	for _, j := range s.sortedJobs("") {
		if jobID != "" && j.ID != jobID {
			continue
		}
		for _, r := range j.Results {
			if profileURL != "" && r.ProfileURL != profileURL {
				continue
			}
			results = append(results, r)
		}
	}
	if results == nil {
		results = []models.Result{}
	}
	return paginate(results, limit, offset)
}

// GetResult finds a result by profile ID across all jobs.
func (s *Store) GetResult(id string) (models.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, j := range s.jobs {
		for _, r := range j.Results {
			if r.ProfileID == id {
				return r, nil
			}
		}
	}
	return models.Result{}, ErrNotFound
}

// Counts returns the number of active jobs and of all jobs.
func (s *Store) Counts() (active, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, j := range s.jobs {
		if j.Status.IsActive() {
			active++
		}
	}
	return active, len(s.jobs)
}

// Stats derives the aggregate snapshot from the stored jobs.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st models.Stats
	cutoff := s.now().Add(-24 * time.Hour)
	for _, j := range s.jobs {
		st.TotalJobs++
		switch {
		case j.Status.IsActive():
			st.ActiveJobs++
		case j.Status == models.JobStatusCompleted:
			st.CompletedJobs++
		case j.Status == models.JobStatusFailed:
			st.FailedJobs++
		}
		switch j.ExtractionMode {
		case models.ExtractionModeProfile:
			st.ExtractionModeStats.Profile++
		case models.ExtractionModeMain:
			st.ExtractionModeStats.Main++
		case models.ExtractionModeComprehensive:
			st.ExtractionModeStats.Comprehensive++
		}

		recent := j.CreatedAt.After(cutoff)
		if recent {
			st.Last24Hours.JobsCreated++
		}
		for _, r := range j.Results {
			st.TotalProfilesProcessed++
			if recent {
				st.Last24Hours.ProfilesProcessed++
			}
			if r.Data != nil {
				st.TotalReelsFound += len(r.Data.Reels)
			}
		}
	}

	st.AverageReelsPerProfile = "0"
	if st.TotalProfilesProcessed > 0 {
		st.AverageReelsPerProfile = fmt.Sprintf("%.2f", float64(st.TotalReelsFound)/float64(st.TotalProfilesProcessed))
	}
	return st
}

func paginate[T any](items []T, limit, offset int) ([]T, models.Pagination) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	total := len(items)
	p := models.Pagination{Total: total, Limit: limit, Offset: offset}
	if offset >= total {
		return []T{}, p
	}
	end := offset + limit
	if end > total {
		end = total
	}
	p.HasMore = end < total
	return items[offset:end], p
}

func copyJob(j *models.Job) models.Job {
	c := *j
	c.ProfileURLs = append([]string(nil), j.ProfileURLs...)
	c.Results = append([]models.Result{}, j.Results...)
	return c
}
