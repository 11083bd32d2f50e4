package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot-inc/taskpilot/internal/application/sharing/dto"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

func TestAcceptShareSuccess(t *testing.T) {
	authRepo := new(mockAuthRepo)
	recipientRepo := new(mockRecipientRepo)
	principalRepo := new(mockPrincipalRepo)

	auth := testAuthorization(5, "sa_xyz", 1, 2, 10, domainSharing.StatusPending)
	ownerRcp := testPersonalRecipient(10, 1, "rcp_abc")

	authRepo.On("GetBySID", mock.Anything, "sa_xyz").Return(auth, nil)
	recipientRepo.On("GetByID", mock.Anything, uint(10)).Return(ownerRcp, nil)
	authRepo.On("UpdateStatusIf", mock.Anything, uint(5),
		[]domainSharing.Status{domainSharing.StatusPending}, domainSharing.StatusAccepted).Return(nil)
	recipientRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domainRecipient.Recipient) bool {
		// The derived recipient belongs to the grantee, holds no credential
		// and points back at the authorization.
		return !r.IsPersonal() &&
			r.Credential() == "" &&
			r.OwnerPrincipalID() == 2 &&
			r.SharedAuthorizationID() != nil && *r.SharedAuthorizationID() == 5
	})).Return(nil)
	principalRepo.On("GetByID", mock.Anything, mock.Anything).Return(testPrincipal(1, "alice"), nil).Maybe()

	uc := NewAcceptShareUseCase(authRepo, recipientRepo, principalRepo, fakeTxManager{}, nil, logger.NewLogger())
	resp, err := uc.Execute(context.Background(), dto.AcceptShareRequest{
		CallerPrincipalID: 2,
		AuthorizationID:   "sa_xyz",
		RecipientName:     "Alice's Todoist",
	})

	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Authorization.Status)
	assert.NotEmpty(t, resp.RecipientID)
	authRepo.AssertExpectations(t)
	recipientRepo.AssertExpectations(t)
}

func TestAcceptShareWrongCaller(t *testing.T) {
	authRepo := new(mockAuthRepo)

	auth := testAuthorization(5, "sa_xyz", 1, 2, 10, domainSharing.StatusPending)
	authRepo.On("GetBySID", mock.Anything, "sa_xyz").Return(auth, nil)

	uc := NewAcceptShareUseCase(authRepo, new(mockRecipientRepo), new(mockPrincipalRepo), fakeTxManager{}, nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), dto.AcceptShareRequest{
		CallerPrincipalID: 999,
		AuthorizationID:   "sa_xyz",
	})

	require.Error(t, err)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrorTypeForbidden, appErr.Type)
}

func TestAcceptShareAlreadyDecided(t *testing.T) {
	authRepo := new(mockAuthRepo)

	auth := testAuthorization(5, "sa_xyz", 1, 2, 10, domainSharing.StatusDeclined)
	authRepo.On("GetBySID", mock.Anything, "sa_xyz").Return(auth, nil)

	uc := NewAcceptShareUseCase(authRepo, new(mockRecipientRepo), new(mockPrincipalRepo), fakeTxManager{}, nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), dto.AcceptShareRequest{
		CallerPrincipalID: 2,
		AuthorizationID:   "sa_xyz",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsConflictError(err))
}

func TestAcceptShareLosesConditionalUpdateRace(t *testing.T) {
	authRepo := new(mockAuthRepo)
	recipientRepo := new(mockRecipientRepo)
	principalRepo := new(mockPrincipalRepo)

	auth := testAuthorization(5, "sa_xyz", 1, 2, 10, domainSharing.StatusPending)
	ownerRcp := testPersonalRecipient(10, 1, "rcp_abc")

	authRepo.On("GetBySID", mock.Anything, "sa_xyz").Return(auth, nil)
	recipientRepo.On("GetByID", mock.Anything, uint(10)).Return(ownerRcp, nil)
	principalRepo.On("GetByID", mock.Anything, mock.Anything).Return(testPrincipal(1, "alice"), nil).Maybe()
	// A concurrent revoke won; the guarded update reports the stale status.
	authRepo.On("UpdateStatusIf", mock.Anything, uint(5), mock.Anything, domainSharing.StatusAccepted).
		Return(domainSharing.ErrInvalidStateTransition)

	uc := NewAcceptShareUseCase(authRepo, recipientRepo, principalRepo, fakeTxManager{}, nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), dto.AcceptShareRequest{
		CallerPrincipalID: 2,
		AuthorizationID:   "sa_xyz",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsConflictError(err))
	recipientRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
