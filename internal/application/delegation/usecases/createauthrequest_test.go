package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot-inc/taskpilot/internal/application/delegation/dto"
	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

func TestCreateAuthRequestSuccess(t *testing.T) {
	requestRepo := new(mockRequestRepo)
	principalRepo := new(mockPrincipalRepo)

	target := testPrincipal(2, "bob")
	principalRepo.On("GetByHandle", mock.Anything, "bob").Return(target, nil)
	principalRepo.On("GetByID", mock.Anything, mock.Anything).Return(testPrincipal(1, "alice"), nil).Maybe()
	requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(q *domainDelegation.AuthRequest) bool {
		return q.RequesterPrincipalID() == 1 &&
			q.TargetPrincipalID() == 2 &&
			q.Status() == domainDelegation.StatusPending &&
			q.ExpiresAt().After(time.Now())
	})).Return(nil)

	uc := NewCreateAuthRequestUseCase(requestRepo, principalRepo, 24*time.Hour, nil, logger.NewLogger())
	resp, err := uc.Execute(context.Background(), dto.CreateAuthRequestRequest{
		RequesterPrincipalID: 1,
		TargetHandle:         "bob",
		PlatformType:         "todoist",
		RecipientName:        "Bob's Todoist",
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	requestRepo.AssertExpectations(t)
}

func TestCreateAuthRequestUnknownTarget(t *testing.T) {
	principalRepo := new(mockPrincipalRepo)
	principalRepo.On("GetByHandle", mock.Anything, "ghost").Return(nil, domainPrincipal.ErrPrincipalNotFound)

	uc := NewCreateAuthRequestUseCase(new(mockRequestRepo), principalRepo, 24*time.Hour, nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), dto.CreateAuthRequestRequest{
		RequesterPrincipalID: 1,
		TargetHandle:         "ghost",
		PlatformType:         "todoist",
		RecipientName:        "x",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsNotFoundError(err))
}

func TestCreateAuthRequestRejectsSelfTarget(t *testing.T) {
	principalRepo := new(mockPrincipalRepo)
	principalRepo.On("GetByHandle", mock.Anything, "alice").Return(testPrincipal(1, "alice"), nil)

	uc := NewCreateAuthRequestUseCase(new(mockRequestRepo), principalRepo, 24*time.Hour, nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), dto.CreateAuthRequestRequest{
		RequesterPrincipalID: 1,
		TargetHandle:         "alice",
		PlatformType:         "todoist",
		RecipientName:        "x",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsValidationError(err))
}

func TestCreateAuthRequestUnknownPlatform(t *testing.T) {
	uc := NewCreateAuthRequestUseCase(new(mockRequestRepo), new(mockPrincipalRepo), 24*time.Hour, nil, logger.NewLogger())
	_, err := uc.Execute(context.Background(), dto.CreateAuthRequestRequest{
		RequesterPrincipalID: 1,
		TargetHandle:         "bob",
		PlatformType:         "jira",
		RecipientName:        "x",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsValidationError(err))
}
