// Package notification delivers sharing and delegation lifecycle events to
// principals. Delivery is best effort; failures are logged and never fail
// the operation that produced the event.
package notification

import (
	"context"

	"github.com/taskpilot-inc/taskpilot/internal/domain/principal"
)

// EventType identifies a lifecycle event worth telling a principal about.
type EventType string

const (
	EventSharingRequested EventType = "sharing_requested"
	EventSharingAccepted  EventType = "sharing_accepted"
	EventSharingDeclined  EventType = "sharing_declined"
	EventSharingRevoked   EventType = "sharing_revoked"
	EventAuthRequested    EventType = "auth_requested"
	EventAuthCompleted    EventType = "auth_completed"
	EventAuthCancelled    EventType = "auth_cancelled"
)

// Event is a rendered notification addressed to one principal.
type Event struct {
	Type          EventType
	To            *principal.Principal
	ActorHandle   string // the principal whose action triggered the event
	RecipientName string // the recipient or auth request the event is about
	Platform      string
}

// Dispatcher delivers events over one channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}
