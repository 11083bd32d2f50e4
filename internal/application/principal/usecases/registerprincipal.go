package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskpilot-inc/taskpilot/internal/application/principal/dto"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	appErrors "github.com/taskpilot-inc/taskpilot/internal/shared/errors"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// RegisterPrincipalUseCase registers a new principal under a unique handle.
type RegisterPrincipalUseCase struct {
	principalRepo domainPrincipal.Repository
	logger        logger.Interface
}

// NewRegisterPrincipalUseCase creates a new register principal use case
func NewRegisterPrincipalUseCase(principalRepo domainPrincipal.Repository, logger logger.Interface) *RegisterPrincipalUseCase {
	return &RegisterPrincipalUseCase{
		principalRepo: principalRepo,
		logger:        logger,
	}
}

// Execute executes the register principal use case
func (uc *RegisterPrincipalUseCase) Execute(ctx context.Context, request dto.RegisterPrincipalRequest) (*dto.PrincipalResponse, error) {
	p, err := domainPrincipal.NewPrincipal(request.Handle, request.DisplayName)
	if err != nil {
		return nil, appErrors.NewValidationError("invalid principal", err.Error())
	}

	if err := uc.principalRepo.Create(ctx, p); err != nil {
		if errors.Is(err, domainPrincipal.ErrHandleTaken) {
			return nil, appErrors.NewConflictError("handle already registered", p.Handle())
		}
		return nil, fmt.Errorf("failed to save principal: %w", err)
	}

	uc.logger.Infow("principal registered",
		"principal_id", p.ID(),
		"handle", p.Handle(),
	)

	return &dto.PrincipalResponse{
		ID:          p.ID(),
		Handle:      p.Handle(),
		DisplayName: p.DisplayName(),
		CreatedAt:   p.CreatedAt(),
	}, nil
}
