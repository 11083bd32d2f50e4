// Package recipient is the application service for task destinations.
package recipient

import (
	"context"

	"github.com/taskpilot-inc/taskpilot/internal/application/recipient/dto"
	"github.com/taskpilot-inc/taskpilot/internal/application/recipient/usecases"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// ServiceDDD is the application service that orchestrates recipient use cases
type ServiceDDD struct {
	createUC *usecases.CreateRecipientUseCase
	listUC   *usecases.ListRecipientsUseCase
	updateUC *usecases.UpdateRecipientUseCase
	deleteUC *usecases.DeleteRecipientUseCase
	logger   logger.Interface
}

// NewServiceDDD creates a new DDD application service
func NewServiceDDD(
	recipientRepo domainRecipient.Repository,
	authRepo domainSharing.Repository,
	validator usecases.CredentialValidator,
	txManager usecases.TransactionManager,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		createUC: usecases.NewCreateRecipientUseCase(recipientRepo, validator, logger),
		listUC:   usecases.NewListRecipientsUseCase(recipientRepo, logger),
		updateUC: usecases.NewUpdateRecipientUseCase(recipientRepo, logger),
		deleteUC: usecases.NewDeleteRecipientUseCase(recipientRepo, authRepo, txManager, logger),
		logger:   logger,
	}
}

// CreateRecipient registers a personal recipient with a directly supplied
// credential.
func (s *ServiceDDD) CreateRecipient(ctx context.Context, request dto.CreateRecipientRequest) (*dto.RecipientResponse, error) {
	return s.createUC.Execute(ctx, request)
}

// ListRecipients returns the caller's recipients.
func (s *ServiceDDD) ListRecipients(ctx context.Context, ownerPrincipalID uint) (*dto.ListRecipientsResponse, error) {
	return s.listUC.Execute(ctx, ownerPrincipalID)
}

// GetRecipient returns one recipient owned by the caller.
func (s *ServiceDDD) GetRecipient(ctx context.Context, callerPrincipalID uint, recipientID string) (*dto.RecipientResponse, error) {
	return s.listUC.ExecuteGet(ctx, callerPrincipalID, recipientID)
}

// UpdateRecipient renames or toggles a recipient.
func (s *ServiceDDD) UpdateRecipient(ctx context.Context, request dto.UpdateRecipientRequest) (*dto.RecipientResponse, error) {
	return s.updateUC.Execute(ctx, request)
}

// DeleteRecipient removes a recipient, cascading grants and derived shared
// recipients when it is personal.
func (s *ServiceDDD) DeleteRecipient(ctx context.Context, callerPrincipalID uint, recipientID string) error {
	return s.deleteUC.Execute(ctx, callerPrincipalID, recipientID)
}
