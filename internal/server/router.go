package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter configures the gin engine with all routes and middleware.
func NewRouter(h *IngestHandler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/documents", h.Submit)
	v1.GET("/jobs/:id", h.Status)
	v1.GET("/jobs/:id/wait", h.Wait)
	v1.GET("/jobs/:id/export", h.Export)

	return r
}

// requestLogger logs each request through slog with method, path, status
// and latency.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
