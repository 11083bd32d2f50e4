package recipient

import "context"

// Repository defines the persistence interface for recipients.
type Repository interface {
	Create(ctx context.Context, r *Recipient) error
	GetByID(ctx context.Context, id uint) (*Recipient, error)
	GetBySID(ctx context.Context, sid string) (*Recipient, error)
	ListByOwner(ctx context.Context, ownerPrincipalID uint) ([]*Recipient, error)
	Update(ctx context.Context, r *Recipient) error
	// UpdateCredential writes only the credential column. Used by the token
	// refresh path so concurrent metadata edits are not clobbered.
	UpdateCredential(ctx context.Context, id uint, credential string) error
	Delete(ctx context.Context, id uint) error

	// FindBySharedAuthorizationID returns the shared recipients derived from
	// the given authorization.
	FindBySharedAuthorizationID(ctx context.Context, authorizationID uint) ([]*Recipient, error)
	// DeleteBySharedAuthorizationID removes all shared recipients derived
	// from the given authorization (revoke and cascade paths).
	DeleteBySharedAuthorizationID(ctx context.Context, authorizationID uint) error
}
