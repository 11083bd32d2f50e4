package delegation

import (
	"context"
	"time"
)

// Repository defines the persistence interface for auth requests.
type Repository interface {
	Create(ctx context.Context, q *AuthRequest) error
	GetByID(ctx context.Context, id uint) (*AuthRequest, error)
	GetBySID(ctx context.Context, sid string) (*AuthRequest, error)
	ListByRequester(ctx context.Context, requesterPrincipalID uint) ([]*AuthRequest, error)
	ListByTarget(ctx context.Context, targetPrincipalID uint) ([]*AuthRequest, error)

	// CompleteIf atomically flips pending -> completed and records the new
	// recipient, guarded by status = pending. ErrInvalidStateTransition when
	// the guard fails, ErrRequestNotFound when the row is missing.
	CompleteIf(ctx context.Context, id uint, completedRecipientID uint) error

	// UpdateStatusIf atomically flips the status guarded by the expected
	// current status (cancel and lazy-expiry paths).
	UpdateStatusIf(ctx context.Context, id uint, from, to Status) error

	// SweepExpired flips every pending row with expires_at < now to expired
	// and returns the number of rows flipped. Idempotent; safe to race with
	// CompleteIf because both are guarded on status = pending.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)

	// CancelPendingByPrincipal cancels all pending requests where the
	// principal is requester or target (principal removal cascade).
	CancelPendingByPrincipal(ctx context.Context, principalID uint) (int64, error)
}
