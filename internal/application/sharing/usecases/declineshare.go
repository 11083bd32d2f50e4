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

// DeclineShareUseCase flips a pending grant to declined.
type DeclineShareUseCase struct {
	authRepo      domainSharing.Repository
	recipientRepo domainRecipient.Repository
	principalRepo domainPrincipal.Repository
	notifier      Notifier
	logger        logger.Interface
}

// NewDeclineShareUseCase creates a new decline share use case
func NewDeclineShareUseCase(
	authRepo domainSharing.Repository,
	recipientRepo domainRecipient.Repository,
	principalRepo domainPrincipal.Repository,
	notifier Notifier,
	logger logger.Interface,
) *DeclineShareUseCase {
	return &DeclineShareUseCase{
		authRepo:      authRepo,
		recipientRepo: recipientRepo,
		principalRepo: principalRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute executes the decline share use case
func (uc *DeclineShareUseCase) Execute(ctx context.Context, callerPrincipalID uint, authorizationID string) (*dto.AuthorizationResponse, error) {
	uc.logger.Infow("executing decline share use case",
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

	if err := auth.Decline(callerPrincipalID); err != nil {
		return nil, mapTransitionError(err)
	}

	if err := uc.authRepo.UpdateStatusIf(ctx, auth.ID(), []domainSharing.Status{domainSharing.StatusPending}, domainSharing.StatusDeclined); err != nil {
		return nil, mapTransitionError(err)
	}

	uc.logger.Infow("share declined", "authorization_id", auth.SID())

	if uc.notifier != nil {
		ownerRcp, rcpErr := uc.recipientRepo.GetByID(ctx, auth.OwnerRecipientID())
		if rcpErr == nil {
			event := granteeDecisionEvent(ctx, uc.principalRepo, auth, ownerRcp)
			goroutine.SafeGo(uc.logger, "notify-share-declined", func() {
				notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := uc.notifier.NotifyShareDeclined(notifyCtx, event); err != nil {
					uc.logger.Warnw("failed to notify owner about declined share",
						"authorization_id", auth.SID(),
						"error", err,
					)
				}
			})
		}
	}

	return buildAuthorizationResponse(ctx, uc.principalRepo, uc.recipientRepo, auth), nil
}
