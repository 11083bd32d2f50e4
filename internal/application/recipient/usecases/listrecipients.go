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

// ListRecipientsUseCase lists the caller's recipients, personal and shared.
type ListRecipientsUseCase struct {
	recipientRepo domainRecipient.Repository
	logger        logger.Interface
}

// NewListRecipientsUseCase creates a new list recipients use case
func NewListRecipientsUseCase(recipientRepo domainRecipient.Repository, logger logger.Interface) *ListRecipientsUseCase {
	return &ListRecipientsUseCase{
		recipientRepo: recipientRepo,
		logger:        logger,
	}
}

// Execute executes the list recipients use case
func (uc *ListRecipientsUseCase) Execute(ctx context.Context, ownerPrincipalID uint) (*dto.ListRecipientsResponse, error) {
	recipients, err := uc.recipientRepo.ListByOwner(ctx, ownerPrincipalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}

	resp := &dto.ListRecipientsResponse{
		Recipients: make([]*dto.RecipientResponse, 0, len(recipients)),
	}
	for _, r := range recipients {
		resp.Recipients = append(resp.Recipients, toResponse(r))
	}
	return resp, nil
}

// ExecuteGet returns a single recipient owned by the caller.
func (uc *ListRecipientsUseCase) ExecuteGet(ctx context.Context, callerPrincipalID uint, recipientID string) (*dto.RecipientResponse, error) {
	rcp, err := uc.recipientRepo.GetBySID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, domainRecipient.ErrRecipientNotFound) {
			return nil, appErrors.NewNotFoundError("recipient not found", recipientID)
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}
	if rcp.OwnerPrincipalID() != callerPrincipalID {
		return nil, appErrors.NewForbiddenError("recipient is not owned by the caller")
	}
	return toResponse(rcp), nil
}
