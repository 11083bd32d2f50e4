package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// ErrCredentialResolution marks failures where the credential exists but
// could not be made usable, such as a refresh rejected by the provider.
// Callers distinguish it from structural failures like a missing
// authorization.
var ErrCredentialResolution = errors.New("credential could not be resolved to a usable token")

// PlatformGateway exposes the platform-specific credential operations the
// coordinator needs. *platform.Registry satisfies it.
type PlatformGateway interface {
	NeedsRefresh(platform domainRecipient.PlatformType, credential string, now time.Time) bool
	Refresh(ctx context.Context, platform domainRecipient.PlatformType, credential string) (string, error)
}

// TokenRefreshCoordinator resolves a recipient's credential and, when the
// platform reports it expired, refreshes it before returning. The refreshed
// secret is written back to the owning personal recipient, which may differ
// from the recipient the caller holds.
type TokenRefreshCoordinator struct {
	resolver      *Resolver
	recipientRepo domainRecipient.Repository
	gateway       PlatformGateway
	logger        logger.Interface
}

// NewTokenRefreshCoordinator creates a token refresh coordinator.
func NewTokenRefreshCoordinator(
	resolver *Resolver,
	recipientRepo domainRecipient.Repository,
	gateway PlatformGateway,
	logger logger.Interface,
) *TokenRefreshCoordinator {
	return &TokenRefreshCoordinator{
		resolver:      resolver,
		recipientRepo: recipientRepo,
		gateway:       gateway,
		logger:        logger,
	}
}

// ResolveUsable returns a credential ready for a platform call. Expired
// OAuth tokens are refreshed transparently; static credentials pass
// through untouched.
func (c *TokenRefreshCoordinator) ResolveUsable(ctx context.Context, rcp *domainRecipient.Recipient) (string, error) {
	owning, err := c.resolver.ResolveOwning(ctx, rcp)
	if err != nil {
		return "", err
	}

	cred := owning.Credential()
	if !c.gateway.NeedsRefresh(owning.PlatformType(), cred, biztime.NowUTC()) {
		return cred, nil
	}

	refreshed, err := c.gateway.Refresh(ctx, owning.PlatformType(), cred)
	if err != nil {
		return "", fmt.Errorf("%w: %s refresh failed: %v", ErrCredentialResolution, owning.PlatformType(), err)
	}

	if err := c.recipientRepo.UpdateCredential(ctx, owning.ID(), refreshed); err != nil {
		// The refreshed token is still valid for this call even when the
		// write-back loses a race or fails transiently.
		c.logger.Warnw("failed to persist refreshed credential",
			"recipient_id", owning.SID(),
			"platform", owning.PlatformType(),
			"error", err,
		)
	}

	return refreshed, nil
}
