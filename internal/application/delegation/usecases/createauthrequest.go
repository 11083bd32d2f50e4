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
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/goroutine"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// CreateAuthRequestUseCase creates a pending delegated-authentication
// request with a TTL.
type CreateAuthRequestUseCase struct {
	requestRepo   domainDelegation.Repository
	principalRepo domainPrincipal.Repository
	ttl           time.Duration
	notifier      Notifier
	logger        logger.Interface
}

// NewCreateAuthRequestUseCase creates a new create auth request use case
func NewCreateAuthRequestUseCase(
	requestRepo domainDelegation.Repository,
	principalRepo domainPrincipal.Repository,
	ttl time.Duration,
	notifier Notifier,
	logger logger.Interface,
) *CreateAuthRequestUseCase {
	return &CreateAuthRequestUseCase{
		requestRepo:   requestRepo,
		principalRepo: principalRepo,
		ttl:           ttl,
		notifier:      notifier,
		logger:        logger,
	}
}

// Execute executes the create auth request use case
func (uc *CreateAuthRequestUseCase) Execute(ctx context.Context, request dto.CreateAuthRequestRequest) (*dto.AuthRequestResponse, error) {
	uc.logger.Infow("executing create auth request use case",
		"requester_principal_id", request.RequesterPrincipalID,
		"target_handle", request.TargetHandle,
		"platform", request.PlatformType,
	)

	platform, err := domainRecipient.ParsePlatformType(request.PlatformType)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid platform type", err.Error())
	}

	target, err := uc.principalRepo.GetByHandle(ctx, request.TargetHandle)
	if err != nil {
		if errors.Is(err, domainPrincipal.ErrPrincipalNotFound) {
			return nil, appErrors.NewNotFoundError("target principal not found", request.TargetHandle)
		}
		return nil, fmt.Errorf("failed to resolve target: %w", err)
	}

	req, err := domainDelegation.NewAuthRequest(request.RequesterPrincipalID, target.ID(), platform, request.RecipientName, uc.ttl)
	if err != nil {
		if errors.Is(err, domainDelegation.ErrSelfTarget) {
			return nil, appErrors.NewValidationError("cannot request authentication from yourself")
		}
		return nil, appErrors.NewValidationError("invalid auth request", err.Error())
	}

	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to save auth request: %w", err)
	}

	uc.logger.Infow("auth request created",
		"auth_request_id", req.SID(),
		"expires_at", req.ExpiresAt(),
	)

	if uc.notifier != nil {
		actorHandle := ""
		if requester, reqErr := uc.principalRepo.GetByID(ctx, request.RequesterPrincipalID); reqErr == nil {
			actorHandle = requester.Handle()
		}
		event := AuthRequestEvent{
			ToPrincipalID: target.ID(),
			ActorHandle:   actorHandle,
			RecipientName: req.RecipientName(),
			Platform:      platform.String(),
		}
		goroutine.SafeGo(uc.logger, "notify-auth-requested", func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := uc.notifier.NotifyAuthRequested(notifyCtx, event); err != nil {
				uc.logger.Warnw("failed to notify target about auth request",
					"auth_request_id", req.SID(),
					"error", err,
				)
			}
		})
	}

	return buildAuthRequestResponse(ctx, uc.principalRepo, nil, req), nil
}
