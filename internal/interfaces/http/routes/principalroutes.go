package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/handlers"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
)

type PrincipalRouteConfig struct {
	PrincipalHandler *handlers.PrincipalHandler
	AuthMiddleware   *middleware.AuthMiddleware
	RateLimit        gin.HandlerFunc
}

func SetupPrincipalRoutes(engine *gin.Engine, config *PrincipalRouteConfig) {
	principals := engine.Group("/principals")
	{
		// Registration is the only unauthenticated principal route.
		principals.POST("", config.RateLimit, config.PrincipalHandler.RegisterPrincipal)

		me := principals.Group("/me")
		me.Use(config.AuthMiddleware.RequireAuth())
		{
			me.PATCH("/contact", config.PrincipalHandler.UpdateContact)
			me.DELETE("", config.PrincipalHandler.RemovePrincipal)
		}
	}
}
