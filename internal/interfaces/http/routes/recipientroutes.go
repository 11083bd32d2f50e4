package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/handlers"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
)

type RecipientRouteConfig struct {
	RecipientHandler *handlers.RecipientHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupRecipientRoutes(engine *gin.Engine, config *RecipientRouteConfig) {
	recipients := engine.Group("/recipients")
	recipients.Use(config.AuthMiddleware.RequireAuth())
	{
		recipients.POST("", config.RecipientHandler.CreateRecipient)
		recipients.GET("", config.RecipientHandler.ListRecipients)

		recipients.GET("/:id", config.RecipientHandler.GetRecipient)
		recipients.PATCH("/:id", config.RecipientHandler.UpdateRecipient)
		recipients.DELETE("/:id", config.RecipientHandler.DeleteRecipient)
	}
}
