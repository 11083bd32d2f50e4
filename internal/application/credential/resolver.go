// Package credential resolves the secret a recipient needs for platform
// calls, traversing shared pointers and refreshing expired OAuth tokens.
package credential

import (
	"context"
	"errors"
	"fmt"

	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
	"github.com/taskpilot-inc/taskpilot/internal/shared/goroutine"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

// Resolver resolves the credential behind a recipient. Personal recipients
// carry their own secret; shared recipients follow the accepted
// authorization to the owner's personal recipient. The resolved secret is
// never written onto the shared record.
type Resolver struct {
	recipientRepo domainRecipient.Repository
	authRepo      domainSharing.Repository
	logger        logger.Interface
}

// NewResolver creates a credential resolver.
func NewResolver(
	recipientRepo domainRecipient.Repository,
	authRepo domainSharing.Repository,
	logger logger.Interface,
) *Resolver {
	return &Resolver{
		recipientRepo: recipientRepo,
		authRepo:      authRepo,
		logger:        logger,
	}
}

// Resolve returns the secret for the recipient.
func (r *Resolver) Resolve(ctx context.Context, rcp *domainRecipient.Recipient) (string, error) {
	owning, err := r.ResolveOwning(ctx, rcp)
	if err != nil {
		return "", err
	}
	return owning.Credential(), nil
}

// ResolveOwning returns the personal recipient that actually holds the
// credential: the record itself when personal, the owner's record when the
// resolution traversed a shared pointer. Refresh write-backs target this
// record.
func (r *Resolver) ResolveOwning(ctx context.Context, rcp *domainRecipient.Recipient) (*domainRecipient.Recipient, error) {
	if !rcp.Enabled() {
		return nil, domainRecipient.ErrRecipientDisabled
	}

	if rcp.IsPersonal() {
		return rcp, nil
	}

	authID := rcp.SharedAuthorizationID()
	if authID == nil {
		return nil, fmt.Errorf("%w: shared recipient %s has no authorization reference", domainSharing.ErrAuthorizationNotFound, rcp.SID())
	}

	auth, err := r.authRepo.GetByID(ctx, *authID)
	if err != nil {
		if errors.Is(err, domainSharing.ErrAuthorizationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load authorization: %w", err)
	}
	if auth.Status() != domainSharing.StatusAccepted {
		return nil, fmt.Errorf("%w: authorization is %s", domainSharing.ErrPermissionDenied, auth.Status())
	}

	owner, err := r.recipientRepo.GetByID(ctx, auth.OwnerRecipientID())
	if err != nil {
		return nil, err
	}
	if !owner.Enabled() {
		return nil, domainRecipient.ErrRecipientDisabled
	}

	// Usage bookkeeping never delays or fails the resolution.
	goroutine.SafeGo(r.logger, "touch-authorization-last-used", func() {
		if err := r.authRepo.TouchLastUsed(context.Background(), auth.ID()); err != nil {
			r.logger.Debugw("failed to touch authorization last_used_at",
				"authorization_id", auth.SID(),
				"error", err,
			)
		}
	})

	return owner, nil
}
