package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/recipient/dto"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// UpdateRecipientUseCase renames or toggles a recipient owned by the caller.
type UpdateRecipientUseCase struct {
	recipientRepo domainRecipient.Repository
	logger        logger.Interface
}

// NewUpdateRecipientUseCase creates a new update recipient use case
func NewUpdateRecipientUseCase(recipientRepo domainRecipient.Repository, logger logger.Interface) *UpdateRecipientUseCase {
	return &UpdateRecipientUseCase{
		recipientRepo: recipientRepo,
		logger:        logger,
	}
}

// Execute executes the update recipient use case
func (uc *UpdateRecipientUseCase) Execute(ctx context.Context, request dto.UpdateRecipientRequest) (*dto.RecipientResponse, error) {
	rcp, err := uc.recipientRepo.GetBySID(ctx, request.RecipientID)
	if err != nil {
		if errors.Is(err, domainRecipient.ErrRecipientNotFound) {
			return nil, appErrors.NewNotFoundError("recipient not found", request.RecipientID)
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}
	if rcp.OwnerPrincipalID() != request.CallerPrincipalID {
		return nil, appErrors.NewForbiddenError("recipient is not owned by the caller")
	}

	if request.Name != nil {
		if err := rcp.Rename(*request.Name); err != nil {
			return nil, appErrors.NewValidationError("invalid recipient name", err.Error())
		}
	}
	if request.Enabled != nil {
		if *request.Enabled {
			rcp.Enable()
		} else {
			rcp.Disable()
		}
	}

	if err := uc.recipientRepo.Update(ctx, rcp); err != nil {
		return nil, fmt.Errorf("failed to update recipient: %w", err)
	}

	uc.logger.Infow("recipient updated", "recipient_id", rcp.SID())
	return toResponse(rcp), nil
}
