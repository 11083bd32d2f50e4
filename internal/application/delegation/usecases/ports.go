package usecases

import (
	"context"

	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
)

// AuthRequestEvent carries the data notification channels need to tell a
// principal about an auth request lifecycle change.
type AuthRequestEvent struct {
	ToPrincipalID uint
	ActorHandle   string
	RecipientName string
	Platform      string
}

// Notifier delivers delegation lifecycle notifications. Delivery is best
// effort; usecases invoke it fire-and-forget and never fail on its errors.
type Notifier interface {
	NotifyAuthRequested(ctx context.Context, event AuthRequestEvent) error
	NotifyAuthCompleted(ctx context.Context, event AuthRequestEvent) error
	NotifyAuthCancelled(ctx context.Context, event AuthRequestEvent) error
}

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
