package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot-inc/taskpilot/internal/application/recipient/dto"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

func TestCreateRecipientSuccess(t *testing.T) {
	recipientRepo := new(mockRecipientRepo)
	recipientRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domainRecipient.Recipient) bool {
		return r.IsPersonal() && r.OwnerPrincipalID() == 1 && r.Credential() == "key:token"
	})).Return(nil)

	uc := NewCreateRecipientUseCase(recipientRepo, acceptAllValidator{}, logger.NewLogger())
	resp, err := uc.Execute(context.Background(), dto.CreateRecipientRequest{
		OwnerPrincipalID: 1,
		Name:             "Team Trello",
		PlatformType:     "trello",
		Credential:       "key:token",
	})

	require.NoError(t, err)
	assert.Equal(t, "trello", resp.Platform)
	assert.True(t, resp.IsPersonal)
	recipientRepo.AssertExpectations(t)
}

func TestCreateRecipientRejectsMalformedCredential(t *testing.T) {
	uc := NewCreateRecipientUseCase(new(mockRecipientRepo), rejectAllValidator{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), dto.CreateRecipientRequest{
		OwnerPrincipalID: 1,
		Name:             "Team Trello",
		PlatformType:     "trello",
		Credential:       "garbage",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsValidationError(err))
}

func TestCreateRecipientUnknownPlatform(t *testing.T) {
	uc := NewCreateRecipientUseCase(new(mockRecipientRepo), acceptAllValidator{}, logger.NewLogger())
	_, err := uc.Execute(context.Background(), dto.CreateRecipientRequest{
		OwnerPrincipalID: 1,
		Name:             "x",
		PlatformType:     "asana",
		Credential:       "tok",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsValidationError(err))
}
