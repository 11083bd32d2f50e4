package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	recipientapp "github.com/taskpilot-inc/taskpilot/internal/application/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/application/recipient/dto"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
	"github.com/taskpilot-inc/taskpilot/internal/shared/utils"
)

// RecipientHandler exposes the recipient catalog over HTTP. All routes
// require an authenticated principal.
type RecipientHandler struct {
	service *recipientapp.ServiceDDD
	logger  logger.Interface
}

func NewRecipientHandler(service *recipientapp.ServiceDDD) *RecipientHandler {
	return &RecipientHandler{
		service: service,
		logger:  logger.NewLogger().Named("recipient-handler"),
	}
}

// CreateRecipient handles POST /recipients
func (h *RecipientHandler) CreateRecipient(c *gin.Context) {
	var req dto.CreateRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create recipient", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.OwnerPrincipalID = middleware.PrincipalID(c)

	result, err := h.service.CreateRecipient(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "recipient created")
}

// ListRecipients handles GET /recipients
func (h *RecipientHandler) ListRecipients(c *gin.Context) {
	result, err := h.service.ListRecipients(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetRecipient handles GET /recipients/:id
func (h *RecipientHandler) GetRecipient(c *gin.Context) {
	result, err := h.service.GetRecipient(c.Request.Context(), middleware.PrincipalID(c), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateRecipient handles PATCH /recipients/:id
func (h *RecipientHandler) UpdateRecipient(c *gin.Context) {
	var req dto.UpdateRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update recipient", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.CallerPrincipalID = middleware.PrincipalID(c)
	req.RecipientID = c.Param("id")

	result, err := h.service.UpdateRecipient(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "recipient updated", result)
}

// DeleteRecipient handles DELETE /recipients/:id
func (h *RecipientHandler) DeleteRecipient(c *gin.Context) {
	if err := h.service.DeleteRecipient(c.Request.Context(), middleware.PrincipalID(c), c.Param("id")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
