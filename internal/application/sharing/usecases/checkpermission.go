package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/sharing/dto"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// CheckPermissionUseCase decides whether a caller may perform an action
// through a recipient. The decision is the single permission authority;
// every surface that attempts an action consults it.
type CheckPermissionUseCase struct {
	authRepo      domainSharing.Repository
	recipientRepo domainRecipient.Repository
	logger        logger.Interface
}

// NewCheckPermissionUseCase creates a new check permission use case
func NewCheckPermissionUseCase(
	authRepo domainSharing.Repository,
	recipientRepo domainRecipient.Repository,
	logger logger.Interface,
) *CheckPermissionUseCase {
	return &CheckPermissionUseCase{
		authRepo:      authRepo,
		recipientRepo: recipientRepo,
		logger:        logger,
	}
}

// Execute executes the check permission use case
func (uc *CheckPermissionUseCase) Execute(ctx context.Context, request dto.CheckPermissionRequest) (*dto.CheckPermissionResponse, error) {
	rcp, err := uc.recipientRepo.GetBySID(ctx, request.RecipientID)
	if err != nil {
		if errors.Is(err, domainRecipient.ErrRecipientNotFound) {
			return nil, appErrors.NewNotFoundError("recipient not found", request.RecipientID)
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	if rcp.OwnerPrincipalID() != request.CallerPrincipalID {
		return &dto.CheckPermissionResponse{Allowed: false, Reason: "recipient is not owned by the caller"}, nil
	}
	if !rcp.Enabled() {
		return &dto.CheckPermissionResponse{Allowed: false, Reason: "recipient is disabled"}, nil
	}

	// Owners of personal recipients hold every capability.
	if rcp.IsPersonal() {
		return &dto.CheckPermissionResponse{Allowed: true}, nil
	}

	authID := rcp.SharedAuthorizationID()
	if authID == nil {
		return nil, appErrors.NewInternalError("shared recipient has no authorization reference", rcp.SID())
	}
	auth, err := uc.authRepo.GetByID(ctx, *authID)
	if err != nil {
		if errors.Is(err, domainSharing.ErrAuthorizationNotFound) {
			return &dto.CheckPermissionResponse{Allowed: false, Reason: "authorization no longer exists"}, nil
		}
		return nil, fmt.Errorf("failed to load authorization: %w", err)
	}
	if auth.Status() != domainSharing.StatusAccepted {
		return &dto.CheckPermissionResponse{
			Allowed:         false,
			PermissionLevel: auth.PermissionLevel().String(),
			Reason:          fmt.Sprintf("authorization is %s", auth.Status()),
		}, nil
	}

	level := auth.PermissionLevel()
	if !level.Allows(request.Action) {
		return &dto.CheckPermissionResponse{
			Allowed:         false,
			PermissionLevel: level.String(),
			Reason:          fmt.Sprintf("%s does not permit %s", level, request.Action),
		}, nil
	}

	return &dto.CheckPermissionResponse{Allowed: true, PermissionLevel: level.String()}, nil
}
