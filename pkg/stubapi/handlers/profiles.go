package handlers

import (
	"net/http"

	"reels-dash-go/pkg/models"
	"reels-dash-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

type validateRequest struct {
	ProfileURLs []string `json:"profileUrls" binding:"required,min=1"`
}

// ValidateProfiles checks each URL and returns a verdict keyed by URL
func ValidateProfiles(resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}

		validation := make(map[string]models.ValidationEntry, len(req.ProfileURLs))
		for _, u := range req.ProfileURLs {
			if err := utils.ValidateProfileURL(u); err != nil {
				validation[u] = models.ValidationEntry{Valid: false, Error: err.Error()}
				continue
			}
			validation[u] = models.ValidationEntry{Valid: true}
		}
		resp.Fields(c, http.StatusOK, gin.H{"validation": validation})
	}
}
