// Package oauth is the application service for the OAuth onboarding
// handshake.
package oauth

import (
	"context"

	"github.com/taskpilot-inc/taskpilot/internal/application/oauth/dto"
	"github.com/taskpilot-inc/taskpilot/internal/application/oauth/usecases"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// ServiceDDD is the application service that orchestrates oauth handshake
// use cases
type ServiceDDD struct {
	beginUC    *usecases.BeginHandshakeUseCase
	finishUC   *usecases.FinishHandshakeUseCase
	completeUC *usecases.CompleteOAuthRecipientUseCase
	logger     logger.Interface
}

// NewServiceDDD creates a new DDD application service
func NewServiceDDD(
	stateStore usecases.StateStore,
	gateway usecases.ProviderGateway,
	recipientRepo domainRecipient.Repository,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		beginUC:    usecases.NewBeginHandshakeUseCase(stateStore, gateway, logger),
		finishUC:   usecases.NewFinishHandshakeUseCase(stateStore, logger),
		completeUC: usecases.NewCompleteOAuthRecipientUseCase(stateStore, gateway, recipientRepo, logger),
		logger:     logger,
	}
}

// BeginHandshake issues a state token and returns the provider consent URL.
func (s *ServiceDDD) BeginHandshake(ctx context.Context, request dto.BeginHandshakeRequest) (*dto.BeginHandshakeResponse, error) {
	return s.beginUC.Execute(ctx, request)
}

// FinishHandshake validates the provider callback and stores the exchange
// code for one-time consumption.
func (s *ServiceDDD) FinishHandshake(ctx context.Context, request dto.FinishHandshakeRequest) (*dto.FinishHandshakeResponse, error) {
	return s.finishUC.Execute(ctx, request)
}

// CompleteOAuthRecipient consumes the stored exchange code and creates the
// personal recipient.
func (s *ServiceDDD) CompleteOAuthRecipient(ctx context.Context, request dto.CompleteOAuthRecipientRequest) (*dto.CompleteOAuthRecipientResponse, error) {
	return s.completeUC.Execute(ctx, request)
}
