package usecases

import (
	"context"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/sharing/dto"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// ListAuthorizationsUseCase returns the grants a principal owns and the
// grants extended to it.
type ListAuthorizationsUseCase struct {
	authRepo      domainSharing.Repository
	recipientRepo domainRecipient.Repository
	principalRepo domainPrincipal.Repository
	logger        logger.Interface
}

// NewListAuthorizationsUseCase creates a new list authorizations use case
func NewListAuthorizationsUseCase(
	authRepo domainSharing.Repository,
	recipientRepo domainRecipient.Repository,
	principalRepo domainPrincipal.Repository,
	logger logger.Interface,
) *ListAuthorizationsUseCase {
	return &ListAuthorizationsUseCase{
		authRepo:      authRepo,
		recipientRepo: recipientRepo,
		principalRepo: principalRepo,
		logger:        logger,
	}
}

// Execute executes the list authorizations use case
func (uc *ListAuthorizationsUseCase) Execute(ctx context.Context, principalID uint) (*dto.ListAuthorizationsResponse, error) {
	owned, err := uc.authRepo.ListByOwner(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned authorizations: %w", err)
	}
	granted, err := uc.authRepo.ListByGrantee(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list granted authorizations: %w", err)
	}

	resp := &dto.ListAuthorizationsResponse{
		Owned:   make([]*dto.AuthorizationResponse, 0, len(owned)),
		Granted: make([]*dto.AuthorizationResponse, 0, len(granted)),
	}
	for _, a := range owned {
		resp.Owned = append(resp.Owned, buildAuthorizationResponse(ctx, uc.principalRepo, uc.recipientRepo, a))
	}
	for _, a := range granted {
		resp.Granted = append(resp.Granted, buildAuthorizationResponse(ctx, uc.principalRepo, uc.recipientRepo, a))
	}
	return resp, nil
}
