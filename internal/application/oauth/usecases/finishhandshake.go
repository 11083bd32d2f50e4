package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/oauth/dto"
	"github.com/taskpilot-inc/taskpilot/internal/infrastructure/cache"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// FinishHandshakeUseCase validates the provider callback and stores the
// exchange code for one-time consumption.
type FinishHandshakeUseCase struct {
	stateStore StateStore
	logger     logger.Interface
}

// NewFinishHandshakeUseCase creates a new finish handshake use case
func NewFinishHandshakeUseCase(stateStore StateStore, logger logger.Interface) *FinishHandshakeUseCase {
	return &FinishHandshakeUseCase{
		stateStore: stateStore,
		logger:     logger,
	}
}

// Execute executes the finish handshake use case
func (uc *FinishHandshakeUseCase) Execute(ctx context.Context, request dto.FinishHandshakeRequest) (*dto.FinishHandshakeResponse, error) {
	principalID, err := uc.stateStore.CompleteRequest(ctx, request.StateToken, request.ExchangeCode)
	if err != nil {
		switch {
		case errors.Is(err, cache.ErrStateNotFound):
			return nil, appErrors.NewNotFoundError("handshake state not found")
		case errors.Is(err, cache.ErrStateExpired):
			return nil, appErrors.NewGoneError("handshake state expired")
		default:
			return nil, fmt.Errorf("failed to complete handshake: %w", err)
		}
	}

	uc.logger.Infow("oauth handshake completed",
		"principal_id", principalID,
	)

	return &dto.FinishHandshakeResponse{
		PrincipalID: principalID,
		Completed:   true,
	}, nil
}
