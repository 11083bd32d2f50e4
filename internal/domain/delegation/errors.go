package delegation

import "errors"

var (
	// ErrRequestNotFound is returned when an auth request is not found
	ErrRequestNotFound = errors.New("auth request not found")
	// ErrInvalidStateTransition is returned when a status move is not legal,
	// including the loser of a Complete/Sweep race
	ErrInvalidStateTransition = errors.New("invalid auth request state transition")
	// ErrRequestExpired is returned when the request's TTL elapsed before
	// completion
	ErrRequestExpired = errors.New("auth request has expired")
	// ErrSelfTarget is returned when the requester targets itself
	ErrSelfTarget = errors.New("cannot request authentication from yourself")
	// ErrNotTarget is returned when a caller other than the target tries to
	// complete the request
	ErrNotTarget = errors.New("caller is not the target of this auth request")
	// ErrNotParticipant is returned when a caller is neither requester nor
	// target
	ErrNotParticipant = errors.New("caller is not a participant of this auth request")
)
