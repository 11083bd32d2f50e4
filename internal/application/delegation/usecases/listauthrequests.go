package usecases

import (
	"context"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/delegation/dto"
	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// ListAuthRequestsUseCase returns the requests a principal sent and the
// requests addressed to it.
type ListAuthRequestsUseCase struct {
	requestRepo   domainDelegation.Repository
	recipientRepo domainRecipient.Repository
	principalRepo domainPrincipal.Repository
	logger        logger.Interface
}

// NewListAuthRequestsUseCase creates a new list auth requests use case
func NewListAuthRequestsUseCase(
	requestRepo domainDelegation.Repository,
	recipientRepo domainRecipient.Repository,
	principalRepo domainPrincipal.Repository,
	logger logger.Interface,
) *ListAuthRequestsUseCase {
	return &ListAuthRequestsUseCase{
		requestRepo:   requestRepo,
		recipientRepo: recipientRepo,
		principalRepo: principalRepo,
		logger:        logger,
	}
}

// Execute executes the list auth requests use case
func (uc *ListAuthRequestsUseCase) Execute(ctx context.Context, principalID uint) (*dto.ListAuthRequestsResponse, error) {
	sent, err := uc.requestRepo.ListByRequester(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent auth requests: %w", err)
	}
	received, err := uc.requestRepo.ListByTarget(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received auth requests: %w", err)
	}

	resp := &dto.ListAuthRequestsResponse{
		Sent:     make([]*dto.AuthRequestResponse, 0, len(sent)),
		Received: make([]*dto.AuthRequestResponse, 0, len(received)),
	}
	for _, r := range sent {
		resp.Sent = append(resp.Sent, buildAuthRequestResponse(ctx, uc.principalRepo, uc.recipientRepo, r))
	}
	for _, r := range received {
		resp.Received = append(resp.Received, buildAuthRequestResponse(ctx, uc.principalRepo, uc.recipientRepo, r))
	}
	return resp, nil
}
