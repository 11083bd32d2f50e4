// Package sharing is the application service for delegation grants.
package sharing

import (
	"context"

	"github.com/taskpilot-inc/taskpilot/internal/application/sharing/dto"
	"github.com/taskpilot-inc/taskpilot/internal/application/sharing/usecases"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// ServiceDDD is the application service that orchestrates sharing use cases
type ServiceDDD struct {
	createRequestUC *usecases.CreateSharingRequestUseCase
	acceptUC        *usecases.AcceptShareUseCase
	declineUC       *usecases.DeclineShareUseCase
	revokeUC        *usecases.RevokeShareUseCase
	checkUC         *usecases.CheckPermissionUseCase
	listUC          *usecases.ListAuthorizationsUseCase
	logger          logger.Interface
}

// NewServiceDDD creates a new DDD application service
func NewServiceDDD(
	authRepo domainSharing.Repository,
	recipientRepo domainRecipient.Repository,
	principalRepo domainPrincipal.Repository,
	txManager usecases.TransactionManager,
	notifier usecases.Notifier,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		createRequestUC: usecases.NewCreateSharingRequestUseCase(authRepo, recipientRepo, principalRepo, notifier, logger),
		acceptUC:        usecases.NewAcceptShareUseCase(authRepo, recipientRepo, principalRepo, txManager, notifier, logger),
		declineUC:       usecases.NewDeclineShareUseCase(authRepo, recipientRepo, principalRepo, notifier, logger),
		revokeUC:        usecases.NewRevokeShareUseCase(authRepo, recipientRepo, principalRepo, txManager, notifier, logger),
		checkUC:         usecases.NewCheckPermissionUseCase(authRepo, recipientRepo, logger),
		listUC:          usecases.NewListAuthorizationsUseCase(authRepo, recipientRepo, principalRepo, logger),
		logger:          logger,
	}
}

// CreateSharingRequest creates a pending grant for another principal.
func (s *ServiceDDD) CreateSharingRequest(ctx context.Context, request dto.CreateSharingRequest) (*dto.AuthorizationResponse, error) {
	return s.createRequestUC.Execute(ctx, request)
}

// AcceptShare accepts a pending grant as the grantee.
func (s *ServiceDDD) AcceptShare(ctx context.Context, request dto.AcceptShareRequest) (*dto.AcceptShareResponse, error) {
	return s.acceptUC.Execute(ctx, request)
}

// DeclineShare declines a pending grant as the grantee.
func (s *ServiceDDD) DeclineShare(ctx context.Context, callerPrincipalID uint, authorizationID string) (*dto.AuthorizationResponse, error) {
	return s.declineUC.Execute(ctx, callerPrincipalID, authorizationID)
}

// RevokeShare revokes a pending or accepted grant as the owner.
func (s *ServiceDDD) RevokeShare(ctx context.Context, callerPrincipalID uint, authorizationID string) (*dto.AuthorizationResponse, error) {
	return s.revokeUC.Execute(ctx, callerPrincipalID, authorizationID)
}

// CheckPermission decides whether the caller may perform an action through
// a recipient.
func (s *ServiceDDD) CheckPermission(ctx context.Context, request dto.CheckPermissionRequest) (*dto.CheckPermissionResponse, error) {
	return s.checkUC.Execute(ctx, request)
}

// ListAuthorizations returns the caller's owned and granted authorizations.
func (s *ServiceDDD) ListAuthorizations(ctx context.Context, principalID uint) (*dto.ListAuthorizationsResponse, error) {
	return s.listUC.Execute(ctx, principalID)
}
