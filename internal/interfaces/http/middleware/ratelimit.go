package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/ratelimit"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
	"github.com/taskpilot-inc/taskpilot/internal/shared/utils"
)

// RateLimit bounds request rates per client IP. It fails open when the
// limiter backend is unreachable so that redis trouble does not take the
// public endpoints down with it.
func RateLimit(limiter ratelimit.Limiter, cfg ratelimit.Config, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP(), cfg)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
