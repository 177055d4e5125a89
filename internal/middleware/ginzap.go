package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinZap returns a gin.HandlerFunc middleware that logs requests using zap.
// Every line carries the request id set by RequestID, so a rejected document
// can be matched with its access log entry.
func GinZap(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Skip logging for health check endpoint
		if path == "/health" {
			c.Next()
			return
		}

		// Process request
		c.Next()

		// Calculate request duration
		latency := time.Since(start)

		// Get status code and the id assigned upstream
		status := c.Writer.Status()
		reqID := zap.String("request_id", RequestIDFrom(c))

		// Build log message similar to Gin's default format
		msg := fmt.Sprintf("[GIN] %3d | %13v | %15s | %-7s %s",
			status,
			latency,
			c.ClientIP(),
			c.Request.Method,
			path,
		)

		// Add query string if present (list filters travel here)
		if query != "" {
			msg += "?" + query
		}

		// Handler errors first, then by status code
		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				logger.Error(e.Error(),
					zap.Int("status", status),
					zap.Duration("latency", latency),
					zap.String("path", path),
					zap.String("method", c.Request.Method),
					zap.String("ip", c.ClientIP()),
					reqID,
				)
			}
			return
		}

		switch {
		case status >= 500:
			logger.Error(msg,
				zap.String("ip", c.ClientIP()),
				zap.String("user_agent", c.Request.UserAgent()),
				reqID,
			)
		case status >= 400:
			// Rejected documents land here; the handler logged the reason
			logger.Warn(msg, reqID)
		default:
			logger.Info(msg, zap.Int("bytes", c.Writer.Size()), reqID)
		}
	}
}
