// Package principal is the application service for principal accounts.
package principal

import (
	"context"

	"github.com/taskpilot-inc/taskpilot/internal/application/principal/dto"
	"github.com/taskpilot-inc/taskpilot/internal/application/principal/usecases"
	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// ServiceDDD is the application service that orchestrates principal use cases
type ServiceDDD struct {
	registerUC *usecases.RegisterPrincipalUseCase
	contactUC  *usecases.UpdateContactUseCase
	removeUC   *usecases.RemovePrincipalUseCase
	logger     logger.Interface
}

// NewServiceDDD creates a new DDD application service
func NewServiceDDD(
	principalRepo domainPrincipal.Repository,
	recipientRepo domainRecipient.Repository,
	authRepo domainSharing.Repository,
	requestRepo domainDelegation.Repository,
	txManager usecases.TransactionManager,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		registerUC: usecases.NewRegisterPrincipalUseCase(principalRepo, logger),
		contactUC:  usecases.NewUpdateContactUseCase(principalRepo, logger),
		removeUC:   usecases.NewRemovePrincipalUseCase(principalRepo, recipientRepo, authRepo, requestRepo, txManager, logger),
		logger:     logger,
	}
}

// RegisterPrincipal registers a new principal under a unique handle.
func (s *ServiceDDD) RegisterPrincipal(ctx context.Context, request dto.RegisterPrincipalRequest) (*dto.PrincipalResponse, error) {
	return s.registerUC.Execute(ctx, request)
}

// UpdateContact sets the notification addresses for a principal.
func (s *ServiceDDD) UpdateContact(ctx context.Context, request dto.UpdateContactRequest) error {
	return s.contactUC.Execute(ctx, request)
}

// RemovePrincipal removes a principal, revoking grants and cancelling
// pending auth requests along the way.
func (s *ServiceDDD) RemovePrincipal(ctx context.Context, principalID uint) (*dto.RemovePrincipalResponse, error) {
	return s.removeUC.Execute(ctx, principalID)
}
