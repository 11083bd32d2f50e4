package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/handlers"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
)

type DelegationRouteConfig struct {
	DelegationHandler *handlers.DelegationHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func SetupDelegationRoutes(engine *gin.Engine, config *DelegationRouteConfig) {
	requests := engine.Group("/auth-requests")
	requests.Use(config.AuthMiddleware.RequireAuth())
	{
		requests.POST("", config.DelegationHandler.CreateAuthRequest)
		requests.GET("", config.DelegationHandler.ListAuthRequests)

		requests.POST("/:id/complete", config.DelegationHandler.CompleteAuthRequest)
		requests.POST("/:id/cancel", config.DelegationHandler.CancelAuthRequest)
	}
}
