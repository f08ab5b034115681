package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/identity-server/internal/logger"
)

// timeoutMiddleware bounds the request context. A non-positive d disables it.
func timeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// loggingMiddleware logs method, path, status and duration. Bodies are never logged.
func loggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if status >= 500 {
			l.Error("HTTP request failed", args...)
			return
		}
		l.Info("HTTP request completed", args...)
	}
}
