package main

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Barrsum/portfolio/internal/logger"
	"github.com/Barrsum/portfolio/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID tags every request with an id, reusing a well-formed incoming one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLog returns log scoped to the current request.
func requestLog(c *gin.Context, log *logger.Logger) *logger.Logger {
	return log.With(requestIDKey, c.GetString(requestIDKey))
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		zl := requestLog(c, log).Zerolog()
		event := zl.Debug()
		if status >= 500 {
			event = zl.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("bytes", c.Writer.Size()).
			Msg("request")
	}
}

// untracked paths never count as page views.
var untracked = []string{"/static/", "/fonts/", "/metrics", "/healthz", "/favicon"}

// pageViews counts tracked requests by route. Asset and health-check paths are skipped and the
// Do Not Track header is respected.
func pageViews(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untracked {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		c.Next()

		// Unmatched routes would give every scanner request its own label
		route := c.FullPath()
		if route == "" {
			return
		}
		m.PageViews.WithLabelValues(route).Inc()
	}
}
