// Package delegation is the application service for delegated
// authentication requests.
package delegation

import (
	"context"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/application/delegation/dto"
	"github.com/taskpilot-inc/taskpilot/internal/application/delegation/usecases"
	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// ServiceDDD is the application service that orchestrates delegation use cases
type ServiceDDD struct {
	createUC   *usecases.CreateAuthRequestUseCase
	completeUC *usecases.CompleteAuthRequestUseCase
	cancelUC   *usecases.CancelAuthRequestUseCase
	sweepUC    *usecases.SweepExpiredUseCase
	listUC     *usecases.ListAuthRequestsUseCase
	logger     logger.Interface
}

// NewServiceDDD creates a new DDD application service
func NewServiceDDD(
	requestRepo domainDelegation.Repository,
	recipientRepo domainRecipient.Repository,
	principalRepo domainPrincipal.Repository,
	validator usecases.CredentialValidator,
	txManager usecases.TransactionManager,
	notifier usecases.Notifier,
	requestTTL time.Duration,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		createUC:   usecases.NewCreateAuthRequestUseCase(requestRepo, principalRepo, requestTTL, notifier, logger),
		completeUC: usecases.NewCompleteAuthRequestUseCase(requestRepo, recipientRepo, principalRepo, validator, txManager, notifier, logger),
		cancelUC:   usecases.NewCancelAuthRequestUseCase(requestRepo, principalRepo, notifier, logger),
		sweepUC:    usecases.NewSweepExpiredUseCase(requestRepo, logger),
		listUC:     usecases.NewListAuthRequestsUseCase(requestRepo, recipientRepo, principalRepo, logger),
		logger:     logger,
	}
}

// CreateAuthRequest creates a pending delegated-authentication request.
func (s *ServiceDDD) CreateAuthRequest(ctx context.Context, request dto.CreateAuthRequestRequest) (*dto.AuthRequestResponse, error) {
	return s.createUC.Execute(ctx, request)
}

// CompleteAuthRequest fulfills a pending request as the target.
func (s *ServiceDDD) CompleteAuthRequest(ctx context.Context, request dto.CompleteAuthRequestRequest) (*dto.CompleteAuthRequestResponse, error) {
	return s.completeUC.Execute(ctx, request)
}

// CancelAuthRequest cancels a pending request as either participant.
func (s *ServiceDDD) CancelAuthRequest(ctx context.Context, callerPrincipalID uint, authRequestID string) (*dto.AuthRequestResponse, error) {
	return s.cancelUC.Execute(ctx, callerPrincipalID, authRequestID)
}

// SweepExpired flips overdue pending requests to expired.
func (s *ServiceDDD) SweepExpired(ctx context.Context) (int, error) {
	return s.sweepUC.Execute(ctx)
}

// SweepJob exposes the sweep use case for scheduler registration.
func (s *ServiceDDD) SweepJob() *usecases.SweepExpiredUseCase {
	return s.sweepUC
}

// ListAuthRequests returns the caller's sent and received requests.
func (s *ServiceDDD) ListAuthRequests(ctx context.Context, principalID uint) (*dto.ListAuthRequestsResponse, error) {
	return s.listUC.Execute(ctx, principalID)
}
