package handlers

import (
	"net/http"

	"reels-dash-go/pkg/models"

	"github.com/gin-gonic/gin"
)

const noScraper = "synchronous scraping is not available on this server; create a job instead"

// Scrape rejects the legacy single-profile endpoint after validating input
func Scrape() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ScrapeParams
		if err := c.ShouldBindJSON(&req); err != nil || req.ProfileURL == "" {
			fail(c, http.StatusBadRequest, "profileUrl is required")
			return
		}
		fail(c, http.StatusNotImplemented, noScraper)
	}
}

// ScrapeBatch rejects the legacy batch endpoint after validating input
func ScrapeBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchScrapeParams
		if err := c.ShouldBindJSON(&req); err != nil || len(req.ProfileURLs) == 0 {
			fail(c, http.StatusBadRequest, "profileUrls is required")
			return
		}
		fail(c, http.StatusNotImplemented, noScraper)
	}
}
