package usecases

import (
	"context"

	"github.com/taskpilot-inc/taskpilot/internal/application/recipient/dto"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
)

// CredentialValidator rejects malformed credential material before it is
// stored. The platform registry provides the implementation.
type CredentialValidator interface {
	ValidateCredentialShape(platform domainRecipient.PlatformType, credential string) bool
}

// TransactionManager runs a function inside a database transaction carried
// through the context.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// toResponse maps a recipient aggregate to its external view.
func toResponse(r *domainRecipient.Recipient) *dto.RecipientResponse {
	return &dto.RecipientResponse{
		ID:         r.SID(),
		Name:       r.Name(),
		Platform:   r.PlatformType().String(),
		IsPersonal: r.IsPersonal(),
		Enabled:    r.Enabled(),
		CreatedAt:  r.CreatedAt(),
		UpdatedAt:  r.UpdatedAt(),
	}
}
