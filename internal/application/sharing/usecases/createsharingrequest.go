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

// CreateSharingRequestUseCase creates a pending grant offering an owned
// personal recipient to another principal.
type CreateSharingRequestUseCase struct {
	authRepo      domainSharing.Repository
	recipientRepo domainRecipient.Repository
	principalRepo domainPrincipal.Repository
	notifier      Notifier
	logger        logger.Interface
}

// NewCreateSharingRequestUseCase creates a new create sharing request use case
func NewCreateSharingRequestUseCase(
	authRepo domainSharing.Repository,
	recipientRepo domainRecipient.Repository,
	principalRepo domainPrincipal.Repository,
	notifier Notifier,
	logger logger.Interface,
) *CreateSharingRequestUseCase {
	return &CreateSharingRequestUseCase{
		authRepo:      authRepo,
		recipientRepo: recipientRepo,
		principalRepo: principalRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute executes the create sharing request use case
func (uc *CreateSharingRequestUseCase) Execute(ctx context.Context, request dto.CreateSharingRequest) (*dto.AuthorizationResponse, error) {
	uc.logger.Infow("executing create sharing request use case",
		"owner_principal_id", request.OwnerPrincipalID,
		"recipient_id", request.RecipientID,
	)

	permission, err := domainSharing.ParsePermissionLevel(request.PermissionLevel)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid permission level", err.Error())
	}

	grantee, err := uc.principalRepo.GetByHandle(ctx, request.GranteeHandle)
	if err != nil {
		if errors.Is(err, domainPrincipal.ErrPrincipalNotFound) {
			return nil, appErrors.NewNotFoundError("grantee not found", request.GranteeHandle)
		}
		return nil, fmt.Errorf("failed to resolve grantee: %w", err)
	}

	rcp, err := uc.recipientRepo.GetBySID(ctx, request.RecipientID)
	if err != nil {
		if errors.Is(err, domainRecipient.ErrRecipientNotFound) {
			return nil, appErrors.NewNotFoundError("recipient not found", request.RecipientID)
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}
	if rcp.OwnerPrincipalID() != request.OwnerPrincipalID {
		return nil, appErrors.NewForbiddenError("recipient is not owned by the caller")
	}
	if !rcp.IsPersonal() {
		return nil, appErrors.NewForbiddenError("only personally authenticated recipients can be shared")
	}

	auth, err := domainSharing.NewSharedAuthorization(request.OwnerPrincipalID, grantee.ID(), rcp.ID(), permission)
	if err != nil {
		if errors.Is(err, domainSharing.ErrSelfDelegation) {
			return nil, appErrors.NewValidationError("cannot share a recipient with yourself")
		}
		return nil, appErrors.NewValidationError("invalid sharing request", err.Error())
	}

	// The store's uniqueness constraint is the authority on the one-active-
	// grant-per-triple rule; a concurrent duplicate surfaces here.
	if err := uc.authRepo.Create(ctx, auth); err != nil {
		if errors.Is(err, domainSharing.ErrDuplicateAuthorization) {
			return nil, appErrors.NewConflictError("an active authorization already exists for this recipient and grantee")
		}
		return nil, fmt.Errorf("failed to save authorization: %w", err)
	}

	uc.logger.Infow("sharing request created",
		"authorization_id", auth.SID(),
		"grantee_handle", grantee.Handle(),
	)

	if uc.notifier != nil {
		owner, ownerErr := uc.principalRepo.GetByID(ctx, request.OwnerPrincipalID)
		actorHandle := ""
		if ownerErr == nil {
			actorHandle = owner.Handle()
		}
		event := ShareEvent{
			ToPrincipalID: grantee.ID(),
			ActorHandle:   actorHandle,
			RecipientName: rcp.Name(),
			Platform:      rcp.PlatformType().String(),
		}
		goroutine.SafeGo(uc.logger, "notify-share-requested", func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := uc.notifier.NotifyShareRequested(notifyCtx, event); err != nil {
				uc.logger.Warnw("failed to notify grantee about sharing request",
					"authorization_id", auth.SID(),
					"error", err,
				)
			}
		})
	}

	return buildAuthorizationResponse(ctx, uc.principalRepo, uc.recipientRepo, auth), nil
}
