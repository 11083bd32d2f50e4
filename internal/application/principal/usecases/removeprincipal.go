package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/principal/dto"
	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// RemovePrincipalUseCase removes a principal and everything hanging off it:
// active grants are revoked with their derived shared recipients deleted,
// pending auth requests are cancelled, and the principal's own recipients
// are removed. Grantees and counterparties keep their terminal history rows.
type RemovePrincipalUseCase struct {
	principalRepo domainPrincipal.Repository
	recipientRepo domainRecipient.Repository
	authRepo      domainSharing.Repository
	requestRepo   domainDelegation.Repository
	txManager     TransactionManager
	logger        logger.Interface
}

// NewRemovePrincipalUseCase creates a new remove principal use case
func NewRemovePrincipalUseCase(
	principalRepo domainPrincipal.Repository,
	recipientRepo domainRecipient.Repository,
	authRepo domainSharing.Repository,
	requestRepo domainDelegation.Repository,
	txManager TransactionManager,
	logger logger.Interface,
) *RemovePrincipalUseCase {
	return &RemovePrincipalUseCase{
		principalRepo: principalRepo,
		recipientRepo: recipientRepo,
		authRepo:      authRepo,
		requestRepo:   requestRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute executes the remove principal use case
func (uc *RemovePrincipalUseCase) Execute(ctx context.Context, principalID uint) (*dto.RemovePrincipalResponse, error) {
	if _, err := uc.principalRepo.GetByID(ctx, principalID); err != nil {
		if errors.Is(err, domainPrincipal.ErrPrincipalNotFound) {
			return nil, appErrors.NewNotFoundError("principal not found")
		}
		return nil, fmt.Errorf("failed to load principal: %w", err)
	}

	var revoked, cancelled int

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		active, err := uc.authRepo.ListActiveByPrincipal(txCtx, principalID)
		if err != nil {
			return fmt.Errorf("failed to list active grants: %w", err)
		}
		for _, auth := range active {
			err := uc.authRepo.UpdateStatusIf(txCtx, auth.ID(),
				[]domainSharing.Status{domainSharing.StatusPending, domainSharing.StatusAccepted},
				domainSharing.StatusRevoked)
			if err != nil {
				// A concurrent transition already ended this grant.
				if errors.Is(err, domainSharing.ErrInvalidStateTransition) {
					continue
				}
				return fmt.Errorf("failed to revoke grant: %w", err)
			}
			if err := uc.recipientRepo.DeleteBySharedAuthorizationID(txCtx, auth.ID()); err != nil {
				return fmt.Errorf("failed to delete shared recipients: %w", err)
			}
			revoked++
		}

		n, err := uc.requestRepo.CancelPendingByPrincipal(txCtx, principalID)
		if err != nil {
			return fmt.Errorf("failed to cancel pending auth requests: %w", err)
		}
		cancelled = int(n)

		owned, err := uc.recipientRepo.ListByOwner(txCtx, principalID)
		if err != nil {
			return fmt.Errorf("failed to list recipients: %w", err)
		}
		for _, rcp := range owned {
			if rcp.IsPersonal() {
				if err := uc.authRepo.DeleteByOwnerRecipientID(txCtx, rcp.ID()); err != nil {
					return fmt.Errorf("failed to delete grants for recipient: %w", err)
				}
			}
			if err := uc.recipientRepo.Delete(txCtx, rcp.ID()); err != nil {
				return fmt.Errorf("failed to delete recipient: %w", err)
			}
		}

		return uc.principalRepo.Delete(txCtx, principalID)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("principal removed",
		"principal_id", principalID,
		"revoked_authorizations", revoked,
		"cancelled_auth_requests", cancelled,
	)

	return &dto.RemovePrincipalResponse{
		RevokedAuthorizations: revoked,
		CancelledAuthRequests: cancelled,
	}, nil
}
