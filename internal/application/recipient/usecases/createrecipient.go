package usecases

import (
	"context"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/recipient/dto"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
	"github.com/taskpilot-inc/taskpilot/internal/shared/utils"
)

// CreateRecipientUseCase registers a personal recipient with directly
// supplied credential material, the non-OAuth onboarding path.
type CreateRecipientUseCase struct {
	recipientRepo domainRecipient.Repository
	validator     CredentialValidator
	logger        logger.Interface
}

// NewCreateRecipientUseCase creates a new create recipient use case
func NewCreateRecipientUseCase(
	recipientRepo domainRecipient.Repository,
	validator CredentialValidator,
	logger logger.Interface,
) *CreateRecipientUseCase {
	return &CreateRecipientUseCase{
		recipientRepo: recipientRepo,
		validator:     validator,
		logger:        logger,
	}
}

// Execute executes the create recipient use case
func (uc *CreateRecipientUseCase) Execute(ctx context.Context, request dto.CreateRecipientRequest) (*dto.RecipientResponse, error) {
	uc.logger.Infow("executing create recipient use case",
		"owner_principal_id", request.OwnerPrincipalID,
		"platform", request.PlatformType,
		"credential", utils.MaskSecret(request.Credential),
	)

	platform, err := domainRecipient.ParsePlatformType(request.PlatformType)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid platform type", err.Error())
	}

	if uc.validator != nil && !uc.validator.ValidateCredentialShape(platform, request.Credential) {
		return nil, appErrors.NewValidationError("credential does not match the platform's expected shape")
	}

	rcp, err := domainRecipient.NewPersonalRecipient(request.OwnerPrincipalID, request.Name, platform, request.Credential, request.PlatformConfig)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid recipient", err.Error())
	}

	if err := uc.recipientRepo.Create(ctx, rcp); err != nil {
		return nil, fmt.Errorf("failed to save recipient: %w", err)
	}

	uc.logger.Infow("recipient created", "recipient_id", rcp.SID(), "platform", platform)
	return toResponse(rcp), nil
}
