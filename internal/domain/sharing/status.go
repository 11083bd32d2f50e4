package sharing

import "fmt"

// Status is the lifecycle state of a SharedAuthorization. It is a closed
// enumeration with an explicit transition table; any move not listed fails
// with ErrInvalidStateTransition.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRevoked  Status = "revoked"
	StatusDeclined Status = "declined"
)

// validTransitions lists every legal status move. Terminal states have no
// outgoing edges.
var validTransitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusDeclined, StatusRevoked},
	StatusAccepted: {StatusRevoked},
	StatusRevoked:  {},
	StatusDeclined: {},
}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusRevoked, StatusDeclined:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown authorization status: %q", s)
	}
}

// String returns the wire representation.
func (s Status) String() string { return string(s) }

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// IsActive reports whether the authorization still binds the triple for the
// uniqueness invariant (pending or accepted).
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusAccepted
}

// CanTransition reports whether the move from -> to is listed in the
// transition table.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
