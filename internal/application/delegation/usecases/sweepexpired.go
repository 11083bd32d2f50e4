package usecases

import (
	"context"
	"fmt"

	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// SweepExpiredUseCase flips every overdue pending auth request to expired.
// It is idempotent and safe to run concurrently with itself and with
// completion, which races on the same status guard. Execute satisfies the
// scheduler's BatchJob contract.
type SweepExpiredUseCase struct {
	requestRepo domainDelegation.Repository
	logger      logger.Interface
}

// NewSweepExpiredUseCase creates a new sweep expired use case
func NewSweepExpiredUseCase(requestRepo domainDelegation.Repository, logger logger.Interface) *SweepExpiredUseCase {
	return &SweepExpiredUseCase{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// Execute flips overdue pending requests and returns how many were flipped.
func (uc *SweepExpiredUseCase) Execute(ctx context.Context) (int, error) {
	count, err := uc.requestRepo.SweepExpired(ctx, biztime.NowUTC())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired auth requests: %w", err)
	}
	if count > 0 {
		uc.logger.Infow("expired auth requests swept", "count", count)
	}
	return int(count), nil
}
