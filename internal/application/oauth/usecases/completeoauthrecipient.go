package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/oauth/dto"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/cache"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// CompleteOAuthRecipientUseCase consumes the principal's stored exchange
// code, trades it for a token, and creates the personal recipient. The code
// is deleted on read; a retry after a failed exchange needs a fresh
// handshake.
type CompleteOAuthRecipientUseCase struct {
	stateStore    StateStore
	gateway       ProviderGateway
	recipientRepo domainRecipient.Repository
	logger        logger.Interface
}

// NewCompleteOAuthRecipientUseCase creates a new complete oauth recipient use case
func NewCompleteOAuthRecipientUseCase(
	stateStore StateStore,
	gateway ProviderGateway,
	recipientRepo domainRecipient.Repository,
	logger logger.Interface,
) *CompleteOAuthRecipientUseCase {
	return &CompleteOAuthRecipientUseCase{
		stateStore:    stateStore,
		gateway:       gateway,
		recipientRepo: recipientRepo,
		logger:        logger,
	}
}

// Execute executes the complete oauth recipient use case
func (uc *CompleteOAuthRecipientUseCase) Execute(ctx context.Context, request dto.CompleteOAuthRecipientRequest) (*dto.CompleteOAuthRecipientResponse, error) {
	uc.logger.Infow("executing complete oauth recipient use case",
		"principal_id", request.PrincipalID,
		"platform", request.PlatformType,
	)

	platform, err := domainRecipient.ParsePlatformType(request.PlatformType)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid platform type", err.Error())
	}

	code, err := uc.stateStore.ConsumeCode(ctx, request.PrincipalID)
	if err != nil {
		if errors.Is(err, cache.ErrCodeNotFound) {
			return nil, appErrors.NewNotFoundError("no completed handshake found for this principal")
		}
		return nil, fmt.Errorf("failed to consume exchange code: %w", err)
	}

	credential, err := uc.gateway.Exchange(ctx, platform, code)
	if err != nil {
		return nil, appErrors.NewValidationError("failed to exchange authorization code", err.Error())
	}

	rcp, err := domainRecipient.NewPersonalRecipient(request.PrincipalID, request.Name, platform, credential, "")
	if err != nil {
		return nil, appErrors.NewValidationError("invalid recipient", err.Error())
	}

	if err := uc.recipientRepo.Create(ctx, rcp); err != nil {
		return nil, fmt.Errorf("failed to save recipient: %w", err)
	}

	uc.logger.Infow("recipient created from oauth handshake",
		"recipient_id", rcp.SID(),
		"platform", platform,
	)

	return &dto.CompleteOAuthRecipientResponse{
		RecipientID:  rcp.SID(),
		Name:         rcp.Name(),
		PlatformType: rcp.PlatformType().String(),
	}, nil
}
