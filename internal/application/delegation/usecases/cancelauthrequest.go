package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/application/delegation/dto"
	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/goroutine"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// CancelAuthRequestUseCase cancels a pending auth request. Either
// participant may cancel.
type CancelAuthRequestUseCase struct {
	requestRepo   domainDelegation.Repository
	principalRepo domainPrincipal.Repository
	notifier      Notifier
	logger        logger.Interface
}

// NewCancelAuthRequestUseCase creates a new cancel auth request use case
func NewCancelAuthRequestUseCase(
	requestRepo domainDelegation.Repository,
	principalRepo domainPrincipal.Repository,
	notifier Notifier,
	logger logger.Interface,
) *CancelAuthRequestUseCase {
	return &CancelAuthRequestUseCase{
		requestRepo:   requestRepo,
		principalRepo: principalRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute executes the cancel auth request use case
func (uc *CancelAuthRequestUseCase) Execute(ctx context.Context, callerPrincipalID uint, authRequestID string) (*dto.AuthRequestResponse, error) {
	uc.logger.Infow("executing cancel auth request use case",
		"caller_principal_id", callerPrincipalID,
		"auth_request_id", authRequestID,
	)

	req, err := uc.requestRepo.GetBySID(ctx, authRequestID)
	if err != nil {
		if errors.Is(err, domainDelegation.ErrRequestNotFound) {
			return nil, appErrors.NewNotFoundError("auth request not found", authRequestID)
		}
		return nil, fmt.Errorf("failed to load auth request: %w", err)
	}

	if !req.CanBeCancelledBy(callerPrincipalID) {
		return nil, appErrors.NewForbiddenError("only the requester or target may cancel an auth request")
	}
	if req.Status() != domainDelegation.StatusPending {
		return nil, appErrors.NewConflictError(fmt.Sprintf("auth request is %s", req.Status()))
	}

	if err := uc.requestRepo.UpdateStatusIf(ctx, req.ID(), domainDelegation.StatusPending, domainDelegation.StatusCancelled); err != nil {
		if errors.Is(err, domainDelegation.ErrInvalidStateTransition) {
			return nil, appErrors.NewConflictError("auth request is no longer pending", err.Error())
		}
		return nil, fmt.Errorf("failed to cancel auth request: %w", err)
	}

	uc.logger.Infow("auth request cancelled", "auth_request_id", req.SID())

	if uc.notifier != nil {
		// Tell the other participant.
		otherID := req.TargetPrincipalID()
		if callerPrincipalID == req.TargetPrincipalID() {
			otherID = req.RequesterPrincipalID()
		}
		actorHandle := ""
		if caller, callerErr := uc.principalRepo.GetByID(ctx, callerPrincipalID); callerErr == nil {
			actorHandle = caller.Handle()
		}
		event := AuthRequestEvent{
			ToPrincipalID: otherID,
			ActorHandle:   actorHandle,
			RecipientName: req.RecipientName(),
			Platform:      req.PlatformType().String(),
		}
		goroutine.SafeGo(uc.logger, "notify-auth-cancelled", func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := uc.notifier.NotifyAuthCancelled(notifyCtx, event); err != nil {
				uc.logger.Warnw("failed to notify participant about cancelled auth request",
					"auth_request_id", req.SID(),
					"error", err,
				)
			}
		})
	}

	cancelled, err := uc.requestRepo.GetByID(ctx, req.ID())
	if err != nil {
		cancelled = req
	}
	return buildAuthRequestResponse(ctx, uc.principalRepo, nil, cancelled), nil
}
