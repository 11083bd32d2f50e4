package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/auth"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
	"github.com/taskpilot-inc/taskpilot/internal/shared/utils"
)

// ContextKeyPrincipalID is the gin context key carrying the authenticated
// principal's internal ID.
const ContextKeyPrincipalID = "principal_id"

// ContextKeyPrincipalHandle is the gin context key carrying the
// authenticated principal's handle.
const ContextKeyPrincipalHandle = "principal_handle"

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// principal identity on the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyPrincipalID, claims.PrincipalID)
		c.Set(ContextKeyPrincipalHandle, claims.Handle)

		c.Next()
	}
}

// PrincipalID returns the authenticated principal's ID from the context.
func PrincipalID(c *gin.Context) uint {
	if v, ok := c.Get(ContextKeyPrincipalID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
