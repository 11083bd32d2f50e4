package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

func TestCancelAuthRequestByEitherParticipant(t *testing.T) {
	for _, caller := range []uint{1, 2} {
		requestRepo := new(mockRequestRepo)
		principalRepo := new(mockPrincipalRepo)

		req := testAuthRequest(7, "areq_abc", 1, 2, domainDelegation.StatusPending, time.Now().Add(time.Hour))
		requestRepo.On("GetBySID", mock.Anything, "areq_abc").Return(req, nil)
		requestRepo.On("UpdateStatusIf", mock.Anything, uint(7),
			domainDelegation.StatusPending, domainDelegation.StatusCancelled).Return(nil)
		requestRepo.On("GetByID", mock.Anything, uint(7)).Return(req, nil)
		principalRepo.On("GetByID", mock.Anything, mock.Anything).Return(testPrincipal(caller, "p"), nil).Maybe()

		uc := NewCancelAuthRequestUseCase(requestRepo, principalRepo, nil, logger.NewLogger())
		_, err := uc.Execute(context.Background(), caller, "areq_abc")
		require.NoError(t, err, "caller %d should be allowed to cancel", caller)
	}
}

func TestCancelAuthRequestOutsiderForbidden(t *testing.T) {
	requestRepo := new(mockRequestRepo)

	req := testAuthRequest(7, "areq_abc", 1, 2, domainDelegation.StatusPending, time.Now().Add(time.Hour))
	requestRepo.On("GetBySID", mock.Anything, "areq_abc").Return(req, nil)

	uc := NewCancelAuthRequestUseCase(requestRepo, new(mockPrincipalRepo), nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), 99, "areq_abc")

	require.Error(t, err)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrorTypeForbidden, appErr.Type)
}

func TestCancelAuthRequestNotPending(t *testing.T) {
	requestRepo := new(mockRequestRepo)

	req := testAuthRequest(7, "areq_abc", 1, 2, domainDelegation.StatusCompleted, time.Now().Add(time.Hour))
	requestRepo.On("GetBySID", mock.Anything, "areq_abc").Return(req, nil)

	uc := NewCancelAuthRequestUseCase(requestRepo, new(mockPrincipalRepo), nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), 1, "areq_abc")

	require.Error(t, err)
	assert.True(t, appErrors.IsConflictError(err))
}

func TestSweepExpiredReportsCount(t *testing.T) {
	requestRepo := new(mockRequestRepo)
	requestRepo.On("SweepExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	uc := NewSweepExpiredUseCase(requestRepo, logger.NewLogger())
	count, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
