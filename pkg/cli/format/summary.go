package format

import "reels-dash-go/pkg/models"

// SummaryStats is derived from a result's reel list. The section counts
// are the scraper's own summary, passed through.
type SummaryStats struct {
	TotalReels     int
	TotalViews     int64
	AverageViews   int64
	CompleteReels  int
	ReelsWithDate  int
	ReelsWithViews int

	ExtractionMode      models.ExtractionMode
	TimelineReels       int
	ProfileReelsSection int
	MainReelsSection    int
	CombinedReels       int
}

// ComputeSummaryStats tallies reels. Views are summed over every reel with
// a positive numeric count, but averaged over reels flagged hasViews.
func ComputeSummaryStats(data *models.ResultData) SummaryStats {
	if data == nil {
		return SummaryStats{}
	}

	s := SummaryStats{
		ExtractionMode:      data.Summary.ExtractionMode,
		TimelineReels:       data.Summary.TimelineReels,
		ProfileReelsSection: data.Summary.ProfileReelsSection,
		MainReelsSection:    data.Summary.MainReelsSection,
		CombinedReels:       data.Summary.CombinedReels,
	}

	var views float64
	for _, reel := range data.Reels {
		s.TotalReels++
		if reel.Complete {
			s.CompleteReels++
		}
		if reel.HasDate {
			s.ReelsWithDate++
		}
		if reel.HasViews {
			s.ReelsWithViews++
		}
		if reel.ViewCountNumeric != nil && *reel.ViewCountNumeric > 0 {
			views += *reel.ViewCountNumeric
		}
	}

	s.TotalViews = roundHalfUp(views)
	if s.ReelsWithViews > 0 {
		s.AverageViews = roundHalfUp(views / float64(s.ReelsWithViews))
	}
	return s
}
