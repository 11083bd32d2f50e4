package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// Logger records one line per request. The authenticated principal is
// included when the auth middleware has already run for the route.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		if principalID := PrincipalID(c); principalID != 0 {
			args = append(args, "principal_id", principalID)
		}

		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.Last().Error())
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("request completed", args...)
		case status >= 400:
			log.Warnw("request completed", args...)
		default:
			log.Debugw("request completed", args...)
		}
	}
}
