package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sharingapp "github.com/taskpilot-inc/taskpilot/internal/application/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/application/sharing/dto"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
	"github.com/taskpilot-inc/taskpilot/internal/shared/utils"
)

// SharingHandler exposes grant lifecycle operations over HTTP.
type SharingHandler struct {
	service *sharingapp.ServiceDDD
	logger  logger.Interface
}

func NewSharingHandler(service *sharingapp.ServiceDDD) *SharingHandler {
	return &SharingHandler{
		service: service,
		logger:  logger.NewLogger().Named("sharing-handler"),
	}
}

// CreateSharingRequest handles POST /shares
func (h *SharingHandler) CreateSharingRequest(c *gin.Context) {
	var req dto.CreateSharingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create sharing request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.OwnerPrincipalID = middleware.PrincipalID(c)

	result, err := h.service.CreateSharingRequest(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "sharing request created")
}

// AcceptShare handles POST /shares/:id/accept
func (h *SharingHandler) AcceptShare(c *gin.Context) {
	var req dto.AcceptShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for accept share", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.CallerPrincipalID = middleware.PrincipalID(c)
	req.AuthorizationID = c.Param("id")

	result, err := h.service.AcceptShare(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "share accepted", result)
}

// DeclineShare handles POST /shares/:id/decline
func (h *SharingHandler) DeclineShare(c *gin.Context) {
	result, err := h.service.DeclineShare(c.Request.Context(), middleware.PrincipalID(c), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "share declined", result)
}

// RevokeShare handles POST /shares/:id/revoke
func (h *SharingHandler) RevokeShare(c *gin.Context) {
	result, err := h.service.RevokeShare(c.Request.Context(), middleware.PrincipalID(c), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "share revoked", result)
}

// CheckPermission handles GET /shares/permissions/:recipient_id
func (h *SharingHandler) CheckPermission(c *gin.Context) {
	action := c.Query("action")
	if action == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "action query parameter is required")
		return
	}

	req := dto.CheckPermissionRequest{
		CallerPrincipalID: middleware.PrincipalID(c),
		RecipientID:       c.Param("recipient_id"),
		Action:            domainSharing.Action(action),
	}

	result, err := h.service.CheckPermission(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListAuthorizations handles GET /shares
func (h *SharingHandler) ListAuthorizations(c *gin.Context) {
	result, err := h.service.ListAuthorizations(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
