package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slinet/ehparse/pkg/utils"
)

// ErrorHandler answers 500 for handlers that recorded an error with c.Error
// without writing a response themselves.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are any errors left unanswered
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last()
		logger.Error("request error",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", RequestIDFrom(c)),
			zap.Error(err),
		)
		// Return error response
		c.JSON(500, utils.GetResponse(nil, 500, "Internal server error", nil))
	}
}

// Recovery returns a middleware for panic recovery
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("request_id", RequestIDFrom(c)),
				)

				c.AbortWithStatusJSON(500, utils.GetResponse(nil, 500, "Internal server error", nil))
			}
		}()

		c.Next()
	}
}

// CORS sets permissive cross-origin headers when enabled.
func CORS(enabled bool, origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
