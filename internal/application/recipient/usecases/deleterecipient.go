package usecases

import (
	"context"
	"errors"
	"fmt"

	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// DeleteRecipientUseCase removes a recipient. Deleting a personal recipient
// cascades: every grant built on it goes away together with the shared
// recipients those grants produced, so no shared pointer can outlive the
// credential it resolves to.
type DeleteRecipientUseCase struct {
	recipientRepo domainRecipient.Repository
	authRepo      domainSharing.Repository
	txManager     TransactionManager
	logger        logger.Interface
}

// NewDeleteRecipientUseCase creates a new delete recipient use case
func NewDeleteRecipientUseCase(
	recipientRepo domainRecipient.Repository,
	authRepo domainSharing.Repository,
	txManager TransactionManager,
	logger logger.Interface,
) *DeleteRecipientUseCase {
	return &DeleteRecipientUseCase{
		recipientRepo: recipientRepo,
		authRepo:      authRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute executes the delete recipient use case
func (uc *DeleteRecipientUseCase) Execute(ctx context.Context, callerPrincipalID uint, recipientID string) error {
	uc.logger.Infow("executing delete recipient use case",
		"caller_principal_id", callerPrincipalID,
		"recipient_id", recipientID,
	)

	rcp, err := uc.recipientRepo.GetBySID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, domainRecipient.ErrRecipientNotFound) {
			return appErrors.NewNotFoundError("recipient not found", recipientID)
		}
		return fmt.Errorf("failed to load recipient: %w", err)
	}
	if rcp.OwnerPrincipalID() != callerPrincipalID {
		return appErrors.NewForbiddenError("recipient is not owned by the caller")
	}

	if !rcp.IsPersonal() {
		// A shared pointer disappears alone; the grant and the owner's
		// recipient are untouched.
		if err := uc.recipientRepo.Delete(ctx, rcp.ID()); err != nil {
			return fmt.Errorf("failed to delete recipient: %w", err)
		}
		uc.logger.Infow("shared recipient deleted", "recipient_id", rcp.SID())
		return nil
	}

	grants, err := uc.authRepo.ListByOwnerRecipientID(ctx, rcp.ID())
	if err != nil {
		return fmt.Errorf("failed to list grants for recipient: %w", err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, grant := range grants {
			if err := uc.recipientRepo.DeleteBySharedAuthorizationID(txCtx, grant.ID()); err != nil {
				return err
			}
		}
		if err := uc.authRepo.DeleteByOwnerRecipientID(txCtx, rcp.ID()); err != nil {
			return err
		}
		return uc.recipientRepo.Delete(txCtx, rcp.ID())
	})
	if err != nil {
		return fmt.Errorf("failed to delete recipient: %w", err)
	}

	uc.logger.Infow("personal recipient deleted with cascade",
		"recipient_id", rcp.SID(),
		"grants_removed", len(grants),
	)
	return nil
}
