// Package sharing models delegation grants: one principal letting another
// use an already-authenticated recipient without ever seeing its credential.
package sharing

import (
	"fmt"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	"github.com/taskpilot-inc/taskpilot/internal/shared/id"
)

// SharedAuthorization is the delegation grant aggregate root.
//
// Lifecycle: created pending by the owner; accepted or declined by the
// grantee; revoked by the owner from pending or accepted. Terminal states
// are immutable. At most one active (pending or accepted) record may exist
// per (owner, grantee, owner recipient) triple; the persistence layer backs
// this with a unique index.
type SharedAuthorization struct {
	id                 uint
	sid                string // Stripe-style ID: sa_xxx
	ownerPrincipalID   uint
	granteePrincipalID uint
	ownerRecipientID   uint
	permissionLevel    PermissionLevel
	status             Status
	createdAt          time.Time
	updatedAt          time.Time
	lastUsedAt         *time.Time
}

// NewSharedAuthorization creates a pending grant.
func NewSharedAuthorization(ownerPrincipalID, granteePrincipalID, ownerRecipientID uint, permission PermissionLevel) (*SharedAuthorization, error) {
	if ownerPrincipalID == 0 {
		return nil, fmt.Errorf("owner principal ID is required")
	}
	if granteePrincipalID == 0 {
		return nil, fmt.Errorf("grantee principal ID is required")
	}
	if ownerRecipientID == 0 {
		return nil, fmt.Errorf("owner recipient ID is required")
	}
	if ownerPrincipalID == granteePrincipalID {
		return nil, ErrSelfDelegation
	}

	sid, err := id.NewAuthorizationID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &SharedAuthorization{
		sid:                sid,
		ownerPrincipalID:   ownerPrincipalID,
		granteePrincipalID: granteePrincipalID,
		ownerRecipientID:   ownerRecipientID,
		permissionLevel:    permission,
		status:             StatusPending,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructSharedAuthorization reconstructs from persistence
func ReconstructSharedAuthorization(
	authID uint,
	sid string,
	ownerPrincipalID uint,
	granteePrincipalID uint,
	ownerRecipientID uint,
	permissionLevel PermissionLevel,
	status Status,
	createdAt, updatedAt time.Time,
	lastUsedAt *time.Time,
) *SharedAuthorization {
	return &SharedAuthorization{
		id:                 authID,
		sid:                sid,
		ownerPrincipalID:   ownerPrincipalID,
		granteePrincipalID: granteePrincipalID,
		ownerRecipientID:   ownerRecipientID,
		permissionLevel:    permissionLevel,
		status:             status,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		lastUsedAt:         lastUsedAt,
	}
}

// Getters
func (a *SharedAuthorization) ID() uint                         { return a.id }
func (a *SharedAuthorization) SID() string                      { return a.sid }
func (a *SharedAuthorization) OwnerPrincipalID() uint           { return a.ownerPrincipalID }
func (a *SharedAuthorization) GranteePrincipalID() uint         { return a.granteePrincipalID }
func (a *SharedAuthorization) OwnerRecipientID() uint           { return a.ownerRecipientID }
func (a *SharedAuthorization) PermissionLevel() PermissionLevel { return a.permissionLevel }
func (a *SharedAuthorization) Status() Status                   { return a.status }
func (a *SharedAuthorization) CreatedAt() time.Time             { return a.createdAt }
func (a *SharedAuthorization) UpdatedAt() time.Time             { return a.updatedAt }
func (a *SharedAuthorization) LastUsedAt() *time.Time           { return a.lastUsedAt }

// SetID sets the authorization ID (only for persistence layer use)
func (a *SharedAuthorization) SetID(authID uint) { a.id = authID }

// transition applies a status move after checking the transition table.
func (a *SharedAuthorization) transition(to Status) error {
	if !CanTransition(a.status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, a.status, to)
	}
	a.status = to
	a.updatedAt = biztime.NowUTC()
	return nil
}

// Accept flips the grant to accepted. Grantee only, pending only.
func (a *SharedAuthorization) Accept(callerPrincipalID uint) error {
	if callerPrincipalID != a.granteePrincipalID {
		return ErrNotGrantee
	}
	return a.transition(StatusAccepted)
}

// Decline flips the grant to declined. Grantee only, pending only.
func (a *SharedAuthorization) Decline(callerPrincipalID uint) error {
	if callerPrincipalID != a.granteePrincipalID {
		return ErrNotGrantee
	}
	return a.transition(StatusDeclined)
}

// Revoke flips the grant to revoked. Owner only, from pending or accepted.
func (a *SharedAuthorization) Revoke(callerPrincipalID uint) error {
	if callerPrincipalID != a.ownerPrincipalID {
		return ErrNotAuthOwner
	}
	return a.transition(StatusRevoked)
}

// RecordUse marks the grant as used. Best-effort bookkeeping; persistence of
// this field never blocks credential resolution.
func (a *SharedAuthorization) RecordUse() {
	now := biztime.NowUTC()
	a.lastUsedAt = &now
}
