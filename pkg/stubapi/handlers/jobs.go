package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"reels-dash-go/pkg/models"
	"reels-dash-go/pkg/stubapi/store"
	"reels-dash-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ListJobs lists jobs, newest first
func ListJobs(s *store.Store, resp *Responder) gin.HandlerFunc {
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

		jobs, page := s.ListJobs(models.JobStatus(c.Query("status")), limit, offset)
		resp.Fields(c, http.StatusOK, gin.H{"jobs": jobs, "pagination": page})
	}
}

// CreateJob queues a new job
func CreateJob(s *store.Store, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params models.CreateJobParams
		if err := c.ShouldBindJSON(&params); err != nil {
			badRequest(c, err)
			return
		}

		var invalid []string
		for i, u := range params.ProfileURLs {
			params.ProfileURLs[i] = strings.TrimSpace(u)
			if err := utils.ValidateProfileURL(u); err != nil {
				invalid = append(invalid, u)
			}
		}
		if len(invalid) > 0 {
			fail(c, http.StatusBadRequest, fmt.Sprintf("invalid profile URLs: %s", strings.Join(invalid, ", ")))
			return
		}

		job := s.CreateJob(params)
		resp.Fields(c, http.StatusCreated, gin.H{
			"jobId":   job.ID,
			"message": "Job created successfully",
			"job":     job,
		})
	}
}

// GetJob returns one job
func GetJob(s *store.Store, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := s.GetJob(c.Param("id"))
		if err != nil {
			notFoundOr500(c, err, "Job not found")
			return
		}
		resp.Object(c, http.StatusOK, job)
	}
}

// DeleteJob cancels an active job or removes a finished one
func DeleteJob(s *store.Store, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		cancelled, err := s.DeleteJob(c.Param("id"))
		if err != nil {
			notFoundOr500(c, err, "Job not found")
			return
		}
		msg := "Job deleted successfully"
		if cancelled {
			msg = "Job cancelled successfully"
		}
		resp.Fields(c, http.StatusOK, gin.H{"message": msg})
	}
}

func notFoundOr500(c *gin.Context, err error, notFound string) {
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, notFound)
		return
	}
	fail(c, http.StatusInternalServerError, err.Error())
}
