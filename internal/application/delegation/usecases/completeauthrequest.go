package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/application/delegation/dto"
	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/goroutine"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// CompleteAuthRequestUseCase fulfills a pending auth request: the target
// supplies credential material and a personal recipient is created for the
// requester. The requester owns the result; the target never does.
type CompleteAuthRequestUseCase struct {
	requestRepo   domainDelegation.Repository
	recipientRepo domainRecipient.Repository
	principalRepo domainPrincipal.Repository
	validator     CredentialValidator
	txManager     TransactionManager
	notifier      Notifier
	logger        logger.Interface
}

// NewCompleteAuthRequestUseCase creates a new complete auth request use case
func NewCompleteAuthRequestUseCase(
	requestRepo domainDelegation.Repository,
	recipientRepo domainRecipient.Repository,
	principalRepo domainPrincipal.Repository,
	validator CredentialValidator,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *CompleteAuthRequestUseCase {
	return &CompleteAuthRequestUseCase{
		requestRepo:   requestRepo,
		recipientRepo: recipientRepo,
		principalRepo: principalRepo,
		validator:     validator,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute executes the complete auth request use case
func (uc *CompleteAuthRequestUseCase) Execute(ctx context.Context, request dto.CompleteAuthRequestRequest) (*dto.CompleteAuthRequestResponse, error) {
	uc.logger.Infow("executing complete auth request use case",
		"caller_principal_id", request.CallerPrincipalID,
		"auth_request_id", request.AuthRequestID,
	)

	req, err := uc.requestRepo.GetBySID(ctx, request.AuthRequestID)
	if err != nil {
		if errors.Is(err, domainDelegation.ErrRequestNotFound) {
			return nil, appErrors.NewNotFoundError("auth request not found", request.AuthRequestID)
		}
		return nil, fmt.Errorf("failed to load auth request: %w", err)
	}

	if request.CallerPrincipalID != req.TargetPrincipalID() {
		return nil, appErrors.NewForbiddenError("only the target of an auth request may complete it")
	}
	if req.Status() != domainDelegation.StatusPending {
		return nil, appErrors.NewConflictError(fmt.Sprintf("auth request is %s", req.Status()))
	}

	// Lazy expiry: the sweep may not have reached this row yet. Flip it
	// best-effort so readers converge; the guarded update keeps this safe
	// against a concurrent sweep.
	if req.IsExpired(biztime.NowUTC()) {
		if err := uc.requestRepo.UpdateStatusIf(ctx, req.ID(), domainDelegation.StatusPending, domainDelegation.StatusExpired); err != nil &&
			!errors.Is(err, domainDelegation.ErrInvalidStateTransition) {
			uc.logger.Warnw("failed to mark overdue auth request expired",
				"auth_request_id", req.SID(),
				"error", err,
			)
		}
		return nil, appErrors.NewGoneError("auth request has expired", req.SID())
	}

	if uc.validator != nil && !uc.validator.ValidateCredentialShape(req.PlatformType(), request.Credential) {
		return nil, appErrors.NewValidationError("credential does not match the platform's expected shape")
	}

	rcp, err := domainRecipient.NewPersonalRecipient(req.RequesterPrincipalID(), req.RecipientName(), req.PlatformType(), request.Credential, "")
	if err != nil {
		return nil, appErrors.NewValidationError("invalid recipient", err.Error())
	}

	// Recipient creation and the pending -> completed flip commit together;
	// a Complete racing the sweep is decided by the status guard and the
	// loser rolls back the recipient.
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.recipientRepo.Create(txCtx, rcp); err != nil {
			return err
		}
		return uc.requestRepo.CompleteIf(txCtx, req.ID(), rcp.ID())
	})
	if err != nil {
		if errors.Is(err, domainDelegation.ErrInvalidStateTransition) {
			return nil, appErrors.NewConflictError("auth request is no longer pending", err.Error())
		}
		if errors.Is(err, domainDelegation.ErrRequestNotFound) {
			return nil, appErrors.NewNotFoundError("auth request not found", req.SID())
		}
		return nil, fmt.Errorf("failed to complete auth request: %w", err)
	}

	uc.logger.Infow("auth request completed",
		"auth_request_id", req.SID(),
		"recipient_id", rcp.SID(),
		"owner_principal_id", req.RequesterPrincipalID(),
	)

	if uc.notifier != nil {
		actorHandle := ""
		if target, targetErr := uc.principalRepo.GetByID(ctx, req.TargetPrincipalID()); targetErr == nil {
			actorHandle = target.Handle()
		}
		event := AuthRequestEvent{
			ToPrincipalID: req.RequesterPrincipalID(),
			ActorHandle:   actorHandle,
			RecipientName: req.RecipientName(),
			Platform:      req.PlatformType().String(),
		}
		goroutine.SafeGo(uc.logger, "notify-auth-completed", func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := uc.notifier.NotifyAuthCompleted(notifyCtx, event); err != nil {
				uc.logger.Warnw("failed to notify requester about completed auth request",
					"auth_request_id", req.SID(),
					"error", err,
				)
			}
		})
	}

	completed, err := uc.requestRepo.GetByID(ctx, req.ID())
	if err != nil {
		completed = req
	}
	return &dto.CompleteAuthRequestResponse{
		AuthRequest: buildAuthRequestResponse(ctx, uc.principalRepo, uc.recipientRepo, completed),
		RecipientID: rcp.SID(),
	}, nil
}
