package handlers

import (
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"reels-dash-go/pkg/models"
	"reels-dash-go/pkg/stubapi/store"

	"github.com/gin-gonic/gin"
)

// LogSource provides the tail of the server log
type LogSource interface {
	Tail(n int) ([]string, int)
}

// Monitor carries what the health and status endpoints report on.
type Monitor struct {
	Store     *store.Store
	Logs      LogSource
	StartedAt time.Time
	Version   string
	Config    models.ServerConfig
}

func (m *Monitor) uptime() float64 {
	return time.Since(m.StartedAt).Seconds()
}

// HealthCheck answers the liveness probe
func HealthCheck(m *Monitor, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp.Fields(c, http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"uptime":    m.uptime(),
			"version":   m.Version,
		})
	}
}

// MonitoringHealth reports process memory, uptime and load
func MonitoringHealth(m *Monitor, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		active, _ := m.Store.Counts()

		fields := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"uptime":    m.uptime(),
			"version":   m.Version,
			"memory": models.Memory{
				RSS:       int64(ms.Sys),
				HeapTotal: int64(ms.HeapSys),
				HeapUsed:  int64(ms.HeapAlloc),
				External:  int64(ms.StackSys),
			},
			"activeJobs": active,
		}
		if load, ok := loadAverages(); ok {
			fields["systemLoad"] = load
		}
		resp.Fields(c, http.StatusOK, fields)
	}
}

// Status answers the dashboard banner
func Status(m *Monitor, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		active, total := m.Store.Counts()
		resp.Fields(c, http.StatusOK, gin.H{
			"status":     "running",
			"message":    "Facebook Reels Scraper API is running",
			"activeJobs": active,
			"totalJobs":  total,
			"timestamp":  time.Now().UTC(),
		})
	}
}

// Config returns the server's runtime configuration
func Config(m *Monitor, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp.Object(c, http.StatusOK, m.Config)
	}
}

// Stats returns the aggregate snapshot
func Stats(m *Monitor, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp.Fields(c, http.StatusOK, gin.H{
			"stats":     m.Store.Stats(),
			"timestamp": time.Now().UTC(),
		})
	}
}

// Logs returns the last ?lines= log lines, 50 by default
func Logs(m *Monitor, resp *Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := queryInt(c, "lines", 50)
		if err != nil {
			badRequest(c, err)
			return
		}
		tail, total := []string{}, 0
		if m.Logs != nil {
			tail, total = m.Logs.Tail(lines)
		}
		resp.Fields(c, http.StatusOK, gin.H{
			"logs":           tail,
			"totalLines":     total,
			"requestedLines": lines,
		})
	}
}

// loadAverages reads /proc/loadavg where it exists.
func loadAverages() ([]float64, bool) {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return nil, false
	}
	fields := strings.Fields(string(data))
	if len(fields) < 3 {
		return nil, false
	}
	loads := make([]float64, 0, 3)
	for _, f := range fields[:3] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		loads = append(loads, v)
	}
	return loads, true
}
