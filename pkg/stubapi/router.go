// Package stubapi is an in-memory stand-in for the reels scraping service.
// It answers every endpoint the dashboard uses but never scrapes.
package stubapi

import (
	"io"
	"time"

	"reels-dash-go/pkg/models"
	"reels-dash-go/pkg/stubapi/handlers"
	"reels-dash-go/pkg/stubapi/logbuf"
	"reels-dash-go/pkg/stubapi/middleware"
	"reels-dash-go/pkg/stubapi/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Version is reported by the health endpoints
const Version = "1.0.0-stub"

type Options struct {
	Envelope  handlers.Envelope
	RateLimit int
	Logger    *logrus.Logger
	Port      int
}

// Server bundles the router with the state behind it.
type Server struct {
	Router *gin.Engine
	Store  *store.Store
	Logs   *logbuf.Buffer
}

func NewServer(st *store.Store, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	logs := logbuf.New(logbuf.DefaultCapacity)
	log.AddHook(logs)

	if st == nil {
		st = store.New()
	}

	port := opts.Port
	if port == 0 {
		port = 3001
	}
	monitor := &handlers.Monitor{
		Store:     st,
		Logs:      logs,
		StartedAt: time.Now(),
		Version:   Version,
		Config: models.ServerConfig{
			MaxConcurrentProfiles: 5,
			APIPort:               port,
			OutputDir:             "./output",
			LogLevel:              log.GetLevel().String(),
			ScrollCount:           10,
			RetryAttempts:         3,
			RetryDelay:            2000,
			RequestTimeout:        30000,
			PageLoadTimeout:       30000,
		},
	}

	return &Server{
		Router: NewRouter(st, monitor, handlers.NewResponder(opts.Envelope), log, opts.RateLimit),
		Store:  st,
		Logs:   logs,
	}
}

func NewRouter(st *store.Store, monitor *handlers.Monitor, resp *handlers.Responder, log *logrus.Logger, rateLimit int) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.RateLimit(rateLimit))

	// Health check
	router.GET("/health", handlers.HealthCheck(monitor, resp))

	api := router.Group("/api")
	{
		api.GET("/status", handlers.Status(monitor, resp))
		api.GET("/config", handlers.Config(monitor, resp))
		api.GET("/stats", handlers.Stats(monitor, resp))

		jobs := api.Group("/jobs")
		{
			jobs.GET("", handlers.ListJobs(st, resp))
			jobs.POST("", handlers.CreateJob(st, resp))
			jobs.GET("/:id", handlers.GetJob(st, resp))
			jobs.DELETE("/:id", handlers.DeleteJob(st, resp))
		}

		results := api.Group("/results")
		{
			results.GET("", handlers.ListResults(st, resp))
			results.GET("/:id", handlers.GetResult(st, resp))
		}

		api.GET("/export/:jobId", handlers.Export(st))
		api.POST("/profiles/validate", handlers.ValidateProfiles(resp))

		monitoring := api.Group("/monitoring")
		{
			monitoring.GET("/health", handlers.MonitoringHealth(monitor, resp))
			monitoring.GET("/logs", handlers.Logs(monitor, resp))
		}

		// Legacy synchronous endpoints
		api.POST("/scrape", handlers.Scrape())
		api.POST("/scrape/batch", handlers.ScrapeBatch())
	}

	return router
}
