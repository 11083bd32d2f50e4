package usecases

import (
	"context"

	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
)

// StateStore issues and consumes the short-lived, single-use handshake
// tokens backing the OAuth consent flow.
type StateStore interface {
	CreatePendingRequest(ctx context.Context, principalID uint) (string, error)
	CompleteRequest(ctx context.Context, stateToken, exchangeCode string) (uint, error)
	ConsumeCode(ctx context.Context, principalID uint) (string, error)
}

// ProviderGateway exposes the per-platform OAuth operations the handshake
// needs. *platform.Registry satisfies it.
type ProviderGateway interface {
	AuthCodeURL(platform domainRecipient.PlatformType, state string) (string, error)
	Exchange(ctx context.Context, platform domainRecipient.PlatformType, code string) (string, error)
}
