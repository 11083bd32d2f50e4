package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/handlers"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
)

type SharingRouteConfig struct {
	SharingHandler *handlers.SharingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupSharingRoutes(engine *gin.Engine, config *SharingRouteConfig) {
	shares := engine.Group("/shares")
	shares.Use(config.AuthMiddleware.RequireAuth())
	{
		shares.POST("", config.SharingHandler.CreateSharingRequest)
		shares.GET("", config.SharingHandler.ListAuthorizations)

		// Specific paths before the parameterized grant routes.
		shares.GET("/permissions/:recipient_id", config.SharingHandler.CheckPermission)

		shares.POST("/:id/accept", config.SharingHandler.AcceptShare)
		shares.POST("/:id/decline", config.SharingHandler.DeclineShare)
		shares.POST("/:id/revoke", config.SharingHandler.RevokeShare)
	}
}
