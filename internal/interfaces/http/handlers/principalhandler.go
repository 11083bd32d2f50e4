package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	principalapp "github.com/taskpilot-inc/taskpilot/internal/application/principal"
	"github.com/taskpilot-inc/taskpilot/internal/application/principal/dto"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/auth"
	"github.com/taskpilot-inc/taskpilot/internal/interfaces/http/middleware"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
	"github.com/taskpilot-inc/taskpilot/internal/shared/utils"
)

// PrincipalHandler exposes account lifecycle operations over HTTP.
// Registration is public and returns a bearer token for the new account.
type PrincipalHandler struct {
	service    *principalapp.ServiceDDD
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewPrincipalHandler(service *principalapp.ServiceDDD, jwtService *auth.JWTService) *PrincipalHandler {
	return &PrincipalHandler{
		service:    service,
		jwtService: jwtService,
		logger:     logger.NewLogger().Named("principal-handler"),
	}
}

// RegisterPrincipalResponse pairs the new account with its access token.
type RegisterPrincipalResponse struct {
	Principal   *dto.PrincipalResponse `json:"principal"`
	AccessToken string                 `json:"access_token"`
}

// RegisterPrincipal handles POST /principals
func (h *PrincipalHandler) RegisterPrincipal(c *gin.Context) {
	var req dto.RegisterPrincipalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register principal", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.RegisterPrincipal(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	token, err := h.jwtService.Generate(result.ID, result.Handle)
	if err != nil {
		h.logger.Errorw("failed to issue access token", "principal_id", result.ID, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to issue access token")
		return
	}

	utils.CreatedResponse(c, RegisterPrincipalResponse{
		Principal:   result,
		AccessToken: token,
	}, "principal registered")
}

// UpdateContact handles PATCH /principals/me/contact
func (h *PrincipalHandler) UpdateContact(c *gin.Context) {
	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update contact", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	req.PrincipalID = middleware.PrincipalID(c)

	if err := h.service.UpdateContact(c.Request.Context(), req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "contact details updated", nil)
}

// RemovePrincipal handles DELETE /principals/me
func (h *PrincipalHandler) RemovePrincipal(c *gin.Context) {
	result, err := h.service.RemovePrincipal(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "principal removed", result)
}
