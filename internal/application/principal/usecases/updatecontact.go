package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/principal/dto"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
	"github.com/taskpilot-inc/taskpilot/internal/shared/utils"
)

// UpdateContactUseCase sets the notification addresses for a principal.
type UpdateContactUseCase struct {
	principalRepo domainPrincipal.Repository
	logger        logger.Interface
}

// NewUpdateContactUseCase creates a new update contact use case
func NewUpdateContactUseCase(principalRepo domainPrincipal.Repository, logger logger.Interface) *UpdateContactUseCase {
	return &UpdateContactUseCase{
		principalRepo: principalRepo,
		logger:        logger,
	}
}

// Execute executes the update contact use case
func (uc *UpdateContactUseCase) Execute(ctx context.Context, request dto.UpdateContactRequest) error {
	p, err := uc.principalRepo.GetByID(ctx, request.PrincipalID)
	if err != nil {
		if errors.Is(err, domainPrincipal.ErrPrincipalNotFound) {
			return appErrors.NewNotFoundError("principal not found")
		}
		return fmt.Errorf("failed to load principal: %w", err)
	}

	if request.Email != nil {
		p.SetEmail(*request.Email)
	}
	if request.TelegramChatID != nil {
		p.SetTelegramChatID(*request.TelegramChatID)
	}

	if err := uc.principalRepo.Update(ctx, p); err != nil {
		return fmt.Errorf("failed to save principal: %w", err)
	}

	uc.logger.Infow("principal contact updated",
		"principal_id", p.ID(),
		"email", utils.MaskEmail(p.Email()),
	)
	return nil
}
