// Package usecases contains the oauth handshake use cases
package usecases

import (
	"context"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/oauth/dto"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// BeginHandshakeUseCase issues a handshake state token and builds the
// provider consent URL.
type BeginHandshakeUseCase struct {
	stateStore StateStore
	gateway    ProviderGateway
	logger     logger.Interface
}

// NewBeginHandshakeUseCase creates a new begin handshake use case
func NewBeginHandshakeUseCase(stateStore StateStore, gateway ProviderGateway, logger logger.Interface) *BeginHandshakeUseCase {
	return &BeginHandshakeUseCase{
		stateStore: stateStore,
		gateway:    gateway,
		logger:     logger,
	}
}

// Execute executes the begin handshake use case
func (uc *BeginHandshakeUseCase) Execute(ctx context.Context, request dto.BeginHandshakeRequest) (*dto.BeginHandshakeResponse, error) {
	uc.logger.Infow("executing begin oauth handshake use case",
		"principal_id", request.PrincipalID,
		"platform", request.PlatformType,
	)

	platform, err := domainRecipient.ParsePlatformType(request.PlatformType)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid platform type", err.Error())
	}
	if !platform.UsesOAuth() {
		return nil, appErrors.NewValidationError("platform does not use oauth", platform.String())
	}

	token, err := uc.stateStore.CreatePendingRequest(ctx, request.PrincipalID)
	if err != nil {
		return nil, fmt.Errorf("failed to create handshake state: %w", err)
	}

	authURL, err := uc.gateway.AuthCodeURL(platform, token)
	if err != nil {
		return nil, appErrors.NewValidationError("platform does not use oauth", platform.String())
	}

	return &dto.BeginHandshakeResponse{
		StateToken: token,
		AuthURL:    authURL,
	}, nil
}
