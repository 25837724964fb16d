package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	prommetrics "github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/prometheus"
)

// RequestLog logs each request with latency and records HTTP metrics.
func RequestLog(log logging.Logger, metrics *prommetrics.Metrics) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if metrics != nil {
			metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, statusClass(status)).Inc()
			metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", status),
			logging.Elapsed(start),
			logging.String("client_ip", c.ClientIP()),
		}
		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request served", fields...)
		}
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
