package store

import (
	"fmt"
	"time"

	"reels-dash-go/pkg/models"

	"github.com/google/uuid"
)

// Seed fills the store with one finished job so the dashboard has results
// to show without a real scraper behind it.
func Seed(s *Store) {
	now := s.now().UTC()
	started := now.Add(-2 * time.Hour)
	completed := started.Add(9 * time.Minute)

	profiles := []string{
		"https://www.facebook.com/natgeo",
		"https://www.facebook.com/nasa",
		"https://www.facebook.com/example.invalid.page",
	}

	job := models.Job{
		ID:             uuid.NewString(),
		Name:           "Sample weekly sweep",
		Status:         models.JobStatusCompleted,
		ProfileURLs:    profiles,
		TargetDate:     started.AddDate(0, 0, -7).Format("2006-01-02"),
		Concurrency:    2,
		ExtractionMode: models.ExtractionModeComprehensive,
		CreatedAt:      started.Add(-time.Minute),
		StartedAt:      &started,
		CompletedAt:    &completed,
		Progress:       models.Progress{Total: 3, Completed: 2, Failed: 1, Current: 3},
	}

	for i, u := range profiles[:2] {
		job.Results = append(job.Results, sampleResult(u, i+3, completed))
	}
	job.Results = append(job.Results, models.Result{
		ProfileID:      uuid.NewString(),
		ProfileURL:     profiles[2],
		ExtractionMode: job.ExtractionMode,
		Success:        false,
		Timestamp:      completed.Format(time.RFC3339),
		Error:          "profile page did not load",
	})

	s.PutJob(job)
}

func sampleResult(profileURL string, reels int, at time.Time) models.Result {
	data := &models.ResultData{
		Profile: models.Profile{Name: profileURL[len("https://www.facebook.com/"):], URL: profileURL},
	}
	for i := 1; i <= reels; i++ {
		views := float64(i * 1250)
		id := fmt.Sprintf("%d%04d", 1000+reels, i)
		source := models.ReelSourceTimeline
		if i%2 == 0 {
			source = models.ReelSourceProfileReelsSection
		}
		data.Reels = append(data.Reels, models.Reel{
			Index:            i,
			ReelID:           id,
			URL:              "https://www.facebook.com/reel/" + id,
			Date:             at.AddDate(0, 0, -i).Format("2006-01-02"),
			DateText:         fmt.Sprintf("%d days ago", i),
			ViewCount:        fmt.Sprintf("%.0f views", views),
			ViewCountNumeric: &views,
			ViewCountMethod:  "aria-label",
			Source:           source,
			Success:          true,
			ExtractionMethod: "hover",
			WalkAttempts:     1,
			HasDate:          true,
			HasViews:         true,
			Complete:         true,
			Timestamp:        at.Format(time.RFC3339),
		})
	}
	data.Summary = models.ResultSummary{
		ExtractionMode:      models.ExtractionModeComprehensive,
		TotalReelsFound:     reels,
		TimelineReels:       (reels + 1) / 2,
		ProfileReelsSection: reels / 2,
		CombinedReels:       reels,
	}
	return models.Result{
		ProfileID:      uuid.NewString(),
		ProfileURL:     profileURL,
		ExtractionMode: models.ExtractionModeComprehensive,
		Success:        true,
		Timestamp:      at.Format(time.RFC3339),
		Data:           data,
	}
}
