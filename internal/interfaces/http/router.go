// Package http assembles the gin engine from handlers, middleware and
// per-feature route groups.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	delegationApp "github.com/taskpilot-inc/taskpilot/internal/application/delegation"
	oauthApp "github.com/taskpilot-inc/taskpilot/internal/application/oauth"
	principalApp "github.com/taskpilot-inc/taskpilot/internal/application/principal"
	recipientApp "github.com/taskpilot-inc/taskpilot/internal/application/recipient"
	sharingApp "github.com/taskpilot-inc/taskpilot/internal/application/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/auth"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/ratelimit"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/handlers"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/routes"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// Services groups the application services the router exposes.
type Services struct {
	Principal  *principalApp.ServiceDDD
	Recipient  *recipientApp.ServiceDDD
	Sharing    *sharingApp.ServiceDDD
	Delegation *delegationApp.ServiceDDD
	OAuth      *oauthApp.ServiceDDD
}

// Router owns the gin engine and its route configuration.
type Router struct {
	engine            *gin.Engine
	principalHandler  *handlers.PrincipalHandler
	recipientHandler  *handlers.RecipientHandler
	sharingHandler    *handlers.SharingHandler
	delegationHandler *handlers.DelegationHandler
	oauthHandler      *handlers.OAuthHandler
	authMiddleware    *middleware.AuthMiddleware
	rateLimit         gin.HandlerFunc
	logger            logger.Interface
}

func NewRouter(services Services, jwtService *auth.JWTService, limiter ratelimit.Limiter, allowedOrigins []string, log logger.Interface) *Router {
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(allowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	return &Router{
		engine:            engine,
		principalHandler:  handlers.NewPrincipalHandler(services.Principal, jwtService),
		recipientHandler:  handlers.NewRecipientHandler(services.Recipient),
		sharingHandler:    handlers.NewSharingHandler(services.Sharing),
		delegationHandler: handlers.NewDelegationHandler(services.Delegation),
		oauthHandler:      handlers.NewOAuthHandler(services.OAuth),
		authMiddleware:    middleware.NewAuthMiddleware(jwtService, log),
		rateLimit: middleware.RateLimit(limiter, ratelimit.Config{
			RequestsPerMinute: 30,
			RequestsPerHour:   300,
		}, log),
		logger: log,
	}
}

// SetupRoutes registers every route group on the engine.
func (r *Router) SetupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupPrincipalRoutes(r.engine, &routes.PrincipalRouteConfig{
		PrincipalHandler: r.principalHandler,
		AuthMiddleware:   r.authMiddleware,
		RateLimit:        r.rateLimit,
	})
	routes.SetupRecipientRoutes(r.engine, &routes.RecipientRouteConfig{
		RecipientHandler: r.recipientHandler,
		AuthMiddleware:   r.authMiddleware,
	})
	routes.SetupSharingRoutes(r.engine, &routes.SharingRouteConfig{
		SharingHandler: r.sharingHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupDelegationRoutes(r.engine, &routes.DelegationRouteConfig{
		DelegationHandler: r.delegationHandler,
		AuthMiddleware:    r.authMiddleware,
	})
	routes.SetupOAuthRoutes(r.engine, &routes.OAuthRouteConfig{
		OAuthHandler:   r.oauthHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimit:      r.rateLimit,
	})
}

// GetEngine exposes the configured engine to the HTTP server.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
