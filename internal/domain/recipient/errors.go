package recipient

import "errors"

var (
	// ErrRecipientNotFound is returned when a recipient is not found
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrNotOwner is returned when the caller does not own the recipient
	ErrNotOwner = errors.New("caller does not own this recipient")
	// ErrNotPersonal is returned when an operation requires a personally
	// authenticated recipient but a shared pointer was given
	ErrNotPersonal = errors.New("recipient is not personally authenticated")
	// ErrSharedRecipientCredential is returned on any attempt to store a
	// credential on a shared recipient
	ErrSharedRecipientCredential = errors.New("shared recipients cannot hold credentials")
	// ErrRecipientDisabled is returned when the recipient is disabled
	ErrRecipientDisabled = errors.New("recipient is disabled")
)
