package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	delegationapp "github.com/taskpilot-inc/taskpilot/internal/application/delegation"
	"github.com/taskpilot-inc/taskpilot/internal/application/delegation/dto"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
	"github.com/taskpilot-inc/taskpilot/internal/shared/utils"
)

// DelegationHandler exposes auth request lifecycle operations over HTTP.
type DelegationHandler struct {
	service *delegationapp.ServiceDDD
	logger  logger.Interface
}

func NewDelegationHandler(service *delegationapp.ServiceDDD) *DelegationHandler {
	return &DelegationHandler{
		service: service,
		logger:  logger.NewLogger().Named("delegation-handler"),
	}
}

// CreateAuthRequest handles POST /auth-requests
func (h *DelegationHandler) CreateAuthRequest(c *gin.Context) {
	var req dto.CreateAuthRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create auth request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.RequesterPrincipalID = middleware.PrincipalID(c)

	result, err := h.service.CreateAuthRequest(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "auth request created")
}

// CompleteAuthRequest handles POST /auth-requests/:id/complete
func (h *DelegationHandler) CompleteAuthRequest(c *gin.Context) {
	var req dto.CompleteAuthRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for complete auth request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.CallerPrincipalID = middleware.PrincipalID(c)
	req.AuthRequestID = c.Param("id")

	result, err := h.service.CompleteAuthRequest(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "auth request completed", result)
}

// CancelAuthRequest handles POST /auth-requests/:id/cancel
func (h *DelegationHandler) CancelAuthRequest(c *gin.Context) {
	result, err := h.service.CancelAuthRequest(c.Request.Context(), middleware.PrincipalID(c), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "auth request cancelled", result)
}

// ListAuthRequests handles GET /auth-requests
func (h *DelegationHandler) ListAuthRequests(c *gin.Context) {
	result, err := h.service.ListAuthRequests(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
