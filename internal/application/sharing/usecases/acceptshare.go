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

// AcceptShareUseCase flips a pending grant to accepted and materializes the
// shared recipient in the grantee's list.
type AcceptShareUseCase struct {
	authRepo      domainSharing.Repository
	recipientRepo domainRecipient.Repository
	principalRepo domainPrincipal.Repository
	txManager     TransactionManager
	notifier      Notifier
	logger        logger.Interface
}

// NewAcceptShareUseCase creates a new accept share use case
func NewAcceptShareUseCase(
	authRepo domainSharing.Repository,
	recipientRepo domainRecipient.Repository,
	principalRepo domainPrincipal.Repository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *AcceptShareUseCase {
	return &AcceptShareUseCase{
		authRepo:      authRepo,
		recipientRepo: recipientRepo,
		principalRepo: principalRepo,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute executes the accept share use case
func (uc *AcceptShareUseCase) Execute(ctx context.Context, request dto.AcceptShareRequest) (*dto.AcceptShareResponse, error) {
	uc.logger.Infow("executing accept share use case",
		"caller_principal_id", request.CallerPrincipalID,
		"authorization_id", request.AuthorizationID,
	)

	auth, err := uc.authRepo.GetBySID(ctx, request.AuthorizationID)
	if err != nil {
		if errors.Is(err, domainSharing.ErrAuthorizationNotFound) {
			return nil, appErrors.NewNotFoundError("authorization not found", request.AuthorizationID)
		}
		return nil, fmt.Errorf("failed to load authorization: %w", err)
	}

	// Actor and transition legality checks on the aggregate. The
	// conditional update below closes the race against a concurrent
	// Decline or Revoke.
	if err := auth.Accept(request.CallerPrincipalID); err != nil {
		return nil, mapTransitionError(err)
	}

	ownerRcp, err := uc.recipientRepo.GetByID(ctx, auth.OwnerRecipientID())
	if err != nil {
		return nil, fmt.Errorf("failed to load owner recipient: %w", err)
	}

	name := request.RecipientName
	if name == "" {
		name = deriveSharedName(ctx, uc.principalRepo, ownerRcp, auth.OwnerPrincipalID())
	}

	sharedRcp, err := domainRecipient.NewSharedRecipient(auth.GranteePrincipalID(), name, ownerRcp.PlatformType(), auth.ID())
	if err != nil {
		return nil, appErrors.NewValidationError("invalid shared recipient", err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.authRepo.UpdateStatusIf(txCtx, auth.ID(), []domainSharing.Status{domainSharing.StatusPending}, domainSharing.StatusAccepted); err != nil {
			return err
		}
		return uc.recipientRepo.Create(txCtx, sharedRcp)
	})
	if err != nil {
		return nil, mapTransitionError(err)
	}

	uc.logger.Infow("share accepted",
		"authorization_id", auth.SID(),
		"shared_recipient_id", sharedRcp.SID(),
	)

	if uc.notifier != nil {
		event := granteeDecisionEvent(ctx, uc.principalRepo, auth, ownerRcp)
		goroutine.SafeGo(uc.logger, "notify-share-accepted", func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := uc.notifier.NotifyShareAccepted(notifyCtx, event); err != nil {
				uc.logger.Warnw("failed to notify owner about accepted share",
					"authorization_id", auth.SID(),
					"error", err,
				)
			}
		})
	}

	return &dto.AcceptShareResponse{
		Authorization: buildAuthorizationResponse(ctx, uc.principalRepo, uc.recipientRepo, auth),
		RecipientID:   sharedRcp.SID(),
	}, nil
}

// granteeDecisionEvent builds the owner-addressed event for an accept or
// decline decision by the grantee.
func granteeDecisionEvent(ctx context.Context, principalRepo domainPrincipal.Repository, auth *domainSharing.SharedAuthorization, ownerRcp *domainRecipient.Recipient) ShareEvent {
	actorHandle := ""
	if grantee, err := principalRepo.GetByID(ctx, auth.GranteePrincipalID()); err == nil {
		actorHandle = grantee.Handle()
	}
	return ShareEvent{
		ToPrincipalID: auth.OwnerPrincipalID(),
		ActorHandle:   actorHandle,
		RecipientName: ownerRcp.Name(),
		Platform:      ownerRcp.PlatformType().String(),
	}
}

// deriveSharedName builds the default display name for a shared recipient
// from the owner recipient's name and the owner's handle.
func deriveSharedName(ctx context.Context, principalRepo domainPrincipal.Repository, ownerRcp *domainRecipient.Recipient, ownerPrincipalID uint) string {
	if owner, err := principalRepo.GetByID(ctx, ownerPrincipalID); err == nil {
		return fmt.Sprintf("%s (shared by @%s)", ownerRcp.Name(), owner.Handle())
	}
	return fmt.Sprintf("%s (shared)", ownerRcp.Name())
}

// mapTransitionError converts domain sharing errors to transport-level
// application errors.
func mapTransitionError(err error) error {
	switch {
	case errors.Is(err, domainSharing.ErrNotGrantee), errors.Is(err, domainSharing.ErrNotAuthOwner):
		return appErrors.NewForbiddenError(err.Error())
	case errors.Is(err, domainSharing.ErrInvalidStateTransition):
		return appErrors.NewConflictError("authorization is not in a state that allows this action", err.Error())
	case errors.Is(err, domainSharing.ErrAuthorizationNotFound):
		return appErrors.NewNotFoundError("authorization not found")
	default:
		return err
	}
}
