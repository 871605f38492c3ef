package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"reels-dash-go/pkg/models"
	"reels-dash-go/pkg/stubapi/store"

	"github.com/gin-gonic/gin"
)

// ListResults lists per-profile results across jobs
func ListResults(s *store.Store, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := queryInt(c, "limit", store.DefaultLimit)
		if err != nil {
			badRequest(c, err)
			return
		}
		offset, err := queryInt(c, "offset", 0)
		if err != nil {
			badRequest(c, err)
			return
		}

		results, page := s.ListResults(c.Query("jobId"), c.Query("profileUrl"), limit, offset)
		resp.Fields(c, http.StatusOK, gin.H{"results": results, "pagination": page})
	}
}

// GetResult returns one result by profile ID
func GetResult(s *store.Store, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := s.GetResult(c.Param("id"))
		if err != nil {
			notFoundOr500(c, err, "Result not found")
			return
		}
		resp.Object(c, http.StatusOK, result)
	}
}

// Export streams a job's results as a JSON or CSV attachment
func Export(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("jobId")
		job, err := s.GetJob(jobID)
		if err != nil {
			notFoundOr500(c, err, "Job not found")
			return
		}

		switch format := c.DefaultQuery("format", "json"); format {
		case "json":
			c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="job-%s-results.json"`, job.ID))
			c.IndentedJSON(http.StatusOK, gin.H{"job": job, "results": job.Results})
		case "csv":
			data, err := resultsCSV(job.Results)
			if err != nil {
				fail(c, http.StatusInternalServerError, err.Error())
				return
			}
			c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="job-%s-results.csv"`, job.ID))
			c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
		default:
			fail(c, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		}
	}
}

// resultsCSV writes one properly quoted row per reel.
func resultsCSV(results []models.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Profile URL", "Profile Name", "Index", "Reel ID", "Date", "View Count", "Views", "Source", "Complete", "URL"})
	for _, r := range results {
		if r.Data == nil {
			continue
		}
		for _, reel := range r.Data.Reels {
			views := ""
			if reel.ViewCountNumeric != nil {
				views = strconv.FormatFloat(*reel.ViewCountNumeric, 'f', -1, 64)
			}
			w.Write([]string{
				r.ProfileURL,
				r.Data.Profile.Name,
				strconv.Itoa(reel.Index),
				reel.ReelID,
				reel.DateText,
				reel.ViewCount,
				views,
				string(reel.Source),
				strconv.FormatBool(reel.Complete),
				reel.URL,
			})
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
