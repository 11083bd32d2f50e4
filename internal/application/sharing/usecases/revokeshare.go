package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/application/sharing/dto"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/goroutine"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// RevokeShareUseCase flips a pending or accepted grant to revoked and
// removes the derived shared recipients from the grantee's list.
type RevokeShareUseCase struct {
	authRepo      domainSharing.Repository
	recipientRepo domainRecipient.Repository
	principalRepo domainPrincipal.Repository
	txManager     TransactionManager
	notifier      Notifier
	logger        logger.Interface
}

// NewRevokeShareUseCase creates a new revoke share use case
func NewRevokeShareUseCase(
	authRepo domainSharing.Repository,
	recipientRepo domainRecipient.Repository,
	principalRepo domainPrincipal.Repository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *RevokeShareUseCase {
	return &RevokeShareUseCase{
		authRepo:      authRepo,
		recipientRepo: recipientRepo,
		principalRepo: principalRepo,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute executes the revoke share use case
func (uc *RevokeShareUseCase) Execute(ctx context.Context, callerPrincipalID uint, authorizationID string) (*dto.AuthorizationResponse, error) {
	uc.logger.Infow("executing revoke share use case",
		"caller_principal_id", callerPrincipalID,
		"authorization_id", authorizationID,
	)

	auth, err := uc.authRepo.GetBySID(ctx, authorizationID)
	if err != nil {
		if errors.Is(err, domainSharing.ErrAuthorizationNotFound) {
			return nil, appErrors.NewNotFoundError("authorization not found", authorizationID)
		}
		return nil, fmt.Errorf("failed to load authorization: %w", err)
	}

	if err := auth.Revoke(callerPrincipalID); err != nil {
		return nil, mapTransitionError(err)
	}

	// Revocation and shared-recipient cleanup commit together so a revoked
	// grant never leaves a usable shared pointer behind.
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		from := []domainSharing.Status{domainSharing.StatusPending, domainSharing.StatusAccepted}
		if err := uc.authRepo.UpdateStatusIf(txCtx, auth.ID(), from, domainSharing.StatusRevoked); err != nil {
			return err
		}
		return uc.recipientRepo.DeleteBySharedAuthorizationID(txCtx, auth.ID())
	})
	if err != nil {
		return nil, mapTransitionError(err)
	}

	uc.logger.Infow("share revoked", "authorization_id", auth.SID())

	if uc.notifier != nil {
		recipientName := ""
		platform := ""
		if ownerRcp, rcpErr := uc.recipientRepo.GetByID(ctx, auth.OwnerRecipientID()); rcpErr == nil {
			recipientName = ownerRcp.Name()
			platform = ownerRcp.PlatformType().String()
		}
		actorHandle := ""
		if owner, ownerErr := uc.principalRepo.GetByID(ctx, auth.OwnerPrincipalID()); ownerErr == nil {
			actorHandle = owner.Handle()
		}
		event := ShareEvent{
			ToPrincipalID: auth.GranteePrincipalID(),
			ActorHandle:   actorHandle,
			RecipientName: recipientName,
			Platform:      platform,
		}
		goroutine.SafeGo(uc.logger, "notify-share-revoked", func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := uc.notifier.NotifyShareRevoked(notifyCtx, event); err != nil {
				uc.logger.Warnw("failed to notify grantee about revoked share",
					"authorization_id", auth.SID(),
					"error", err,
				)
			}
		})
	}

	return buildAuthorizationResponse(ctx, uc.principalRepo, uc.recipientRepo, auth), nil
}
