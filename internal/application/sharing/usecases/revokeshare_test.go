package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

func TestRevokeShareDeletesDerivedRecipients(t *testing.T) {
	authRepo := new(mockAuthRepo)
	recipientRepo := new(mockRecipientRepo)
	principalRepo := new(mockPrincipalRepo)

	auth := testAuthorization(5, "sa_xyz", 1, 2, 10, domainSharing.StatusAccepted)
	ownerRcp := testPersonalRecipient(10, 1, "rcp_abc")

	authRepo.On("GetBySID", mock.Anything, "sa_xyz").Return(auth, nil)
	authRepo.On("UpdateStatusIf", mock.Anything, uint(5),
		[]domainSharing.Status{domainSharing.StatusPending, domainSharing.StatusAccepted},
		domainSharing.StatusRevoked).Return(nil)
	recipientRepo.On("DeleteBySharedAuthorizationID", mock.Anything, uint(5)).Return(nil)
	recipientRepo.On("GetByID", mock.Anything, uint(10)).Return(ownerRcp, nil).Maybe()
	principalRepo.On("GetByID", mock.Anything, mock.Anything).Return(testPrincipal(1, "alice"), nil).Maybe()

	uc := NewRevokeShareUseCase(authRepo, recipientRepo, principalRepo, fakeTxManager{}, nil, logger.NewLogger())
	resp, err := uc.Execute(context.Background(), 1, "sa_xyz")

	require.NoError(t, err)
	assert.Equal(t, "revoked", resp.Status)
	recipientRepo.AssertCalled(t, "DeleteBySharedAuthorizationID", mock.Anything, uint(5))
}

func TestRevokeShareOnlyOwner(t *testing.T) {
	authRepo := new(mockAuthRepo)

	auth := testAuthorization(5, "sa_xyz", 1, 2, 10, domainSharing.StatusAccepted)
	authRepo.On("GetBySID", mock.Anything, "sa_xyz").Return(auth, nil)

	uc := NewRevokeShareUseCase(authRepo, new(mockRecipientRepo), new(mockPrincipalRepo), fakeTxManager{}, nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), 2, "sa_xyz")

	require.Error(t, err)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrorTypeForbidden, appErr.Type)
}

func TestRevokeShareTerminalState(t *testing.T) {
	authRepo := new(mockAuthRepo)

	auth := testAuthorization(5, "sa_xyz", 1, 2, 10, domainSharing.StatusRevoked)
	authRepo.On("GetBySID", mock.Anything, "sa_xyz").Return(auth, nil)

	uc := NewRevokeShareUseCase(authRepo, new(mockRecipientRepo), new(mockPrincipalRepo), fakeTxManager{}, nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), 1, "sa_xyz")

	require.Error(t, err)
	assert.True(t, appErrors.IsConflictError(err))
}
