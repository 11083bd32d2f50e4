package sharing

import "context"

// Repository defines the persistence interface for shared authorizations.
type Repository interface {
	// Create persists a pending grant. The store enforces the uniqueness of
	// active grants per (owner, grantee, recipient) triple; a violation is
	// returned as ErrDuplicateAuthorization.
	Create(ctx context.Context, a *SharedAuthorization) error
	GetByID(ctx context.Context, id uint) (*SharedAuthorization, error)
	GetBySID(ctx context.Context, sid string) (*SharedAuthorization, error)
	ListByOwner(ctx context.Context, ownerPrincipalID uint) ([]*SharedAuthorization, error)
	ListByGrantee(ctx context.Context, granteePrincipalID uint) ([]*SharedAuthorization, error)

	// UpdateStatusIf performs an atomic conditional status update guarded by
	// the expected current status. When the guard fails because the row
	// moved concurrently, ErrInvalidStateTransition is returned; when the
	// row does not exist, ErrAuthorizationNotFound.
	UpdateStatusIf(ctx context.Context, id uint, from []Status, to Status) error

	// TouchLastUsed updates last_used_at only. Best-effort; callers ignore
	// the error on the resolution success path.
	TouchLastUsed(ctx context.Context, id uint) error

	// DeleteByOwnerRecipientID removes all grants referencing the given
	// owner recipient (cascade when the recipient is deleted).
	DeleteByOwnerRecipientID(ctx context.Context, recipientID uint) error

	// ListByOwnerRecipientID returns all grants referencing the given owner
	// recipient regardless of status.
	ListByOwnerRecipientID(ctx context.Context, recipientID uint) ([]*SharedAuthorization, error)

	// ListActiveByPrincipal returns every active grant where the principal
	// is owner or grantee (principal removal cascade).
	ListActiveByPrincipal(ctx context.Context, principalID uint) ([]*SharedAuthorization, error)
}
