package usecases

import "context"

// ShareEvent carries the data notification channels need to tell a
// principal about a grant lifecycle change.
type ShareEvent struct {
	ToPrincipalID uint
	ActorHandle   string
	RecipientName string
	Platform      string
}

// Notifier delivers sharing lifecycle notifications. Delivery is best
// effort; usecases invoke it fire-and-forget and never fail on its errors.
type Notifier interface {
	NotifyShareRequested(ctx context.Context, event ShareEvent) error
	NotifyShareAccepted(ctx context.Context, event ShareEvent) error
	NotifyShareDeclined(ctx context.Context, event ShareEvent) error
	NotifyShareRevoked(ctx context.Context, event ShareEvent) error
}

// TransactionManager runs a function inside a database transaction carried
// through the context.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
