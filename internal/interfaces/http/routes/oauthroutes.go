package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/handlers"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
)

type OAuthRouteConfig struct {
	OAuthHandler   *handlers.OAuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      gin.HandlerFunc
}

func SetupOAuthRoutes(engine *gin.Engine, config *OAuthRouteConfig) {
	oauth := engine.Group("/oauth")
	{
		// The provider redirects here without a bearer token.
		oauth.GET("/callback", config.RateLimit, config.OAuthHandler.FinishHandshake)

		authed := oauth.Group("")
		authed.Use(config.AuthMiddleware.RequireAuth())
		{
			authed.POST("/handshake", config.OAuthHandler.BeginHandshake)
			authed.POST("/recipients", config.OAuthHandler.CompleteOAuthRecipient)
		}
	}
}
