package sharing

import "errors"

var (
	// ErrAuthorizationNotFound is returned when an authorization is not found
	ErrAuthorizationNotFound = errors.New("shared authorization not found")
	// ErrInvalidStateTransition is returned when a status move is not listed
	// in the transition table, including the loser of a conditional-update
	// race
	ErrInvalidStateTransition = errors.New("invalid authorization state transition")
	// ErrDuplicateAuthorization is returned when an active grant already
	// exists for the (owner, grantee, recipient) triple
	ErrDuplicateAuthorization = errors.New("an active authorization already exists for this recipient and grantee")
	// ErrSelfDelegation is returned when a principal tries to share with
	// itself
	ErrSelfDelegation = errors.New("cannot share a recipient with yourself")
	// ErrNotGrantee is returned when a caller other than the grantee tries a
	// grantee-only transition
	ErrNotGrantee = errors.New("caller is not the grantee of this authorization")
	// ErrNotAuthOwner is returned when a caller other than the owner tries an
	// owner-only transition
	ErrNotAuthOwner = errors.New("caller is not the owner of this authorization")
	// ErrPermissionDenied is returned when the permission level does not
	// allow the attempted action
	ErrPermissionDenied = errors.New("permission level does not allow this action")
)
