package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	oauthapp "github.com/taskpilot-inc/taskpilot/internal/application/oauth"
	"github.com/taskpilot-inc/taskpilot/internal/application/oauth/dto"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
	"github.com/taskpilot-inc/taskpilot/internal/shared/utils"
)

// OAuthHandler exposes the provider handshake over HTTP. The callback
// route is public because the provider redirect carries no bearer token;
// the state token itself proves who started the handshake.
type OAuthHandler struct {
	service *oauthapp.ServiceDDD
	logger  logger.Interface
}

func NewOAuthHandler(service *oauthapp.ServiceDDD) *OAuthHandler {
	return &OAuthHandler{
		service: service,
		logger:  logger.NewLogger().Named("oauth-handler"),
	}
}

// BeginHandshake handles POST /oauth/handshake
func (h *OAuthHandler) BeginHandshake(c *gin.Context) {
	var req dto.BeginHandshakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for begin handshake", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.PrincipalID = middleware.PrincipalID(c)

	result, err := h.service.BeginHandshake(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "handshake started")
}

// FinishHandshake handles GET /oauth/callback
func (h *OAuthHandler) FinishHandshake(c *gin.Context) {
	req := dto.FinishHandshakeRequest{
		StateToken:   c.Query("state"),
		ExchangeCode: c.Query("code"),
	}
	if req.StateToken == "" || req.ExchangeCode == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "state and code query parameters are required")
		return
	}

	result, err := h.service.FinishHandshake(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "handshake completed, recipient creation pending", result)
}

// CompleteOAuthRecipient handles POST /oauth/recipients
func (h *OAuthHandler) CompleteOAuthRecipient(c *gin.Context) {
	var req dto.CompleteOAuthRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for complete oauth recipient", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.PrincipalID = middleware.PrincipalID(c)

	result, err := h.service.CompleteOAuthRecipient(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "recipient created")
}
