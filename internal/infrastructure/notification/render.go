package notification

import "fmt"

// renderSubject produces the one-line summary used as an email subject or
// the leading line of a chat message.
func renderSubject(event Event) string {
	switch event.Type {
	case EventSharingRequested:
		return fmt.Sprintf("@%s wants to share access to %q with you", event.ActorHandle, event.RecipientName)
	case EventSharingAccepted:
		return fmt.Sprintf("@%s accepted your share of %q", event.ActorHandle, event.RecipientName)
	case EventSharingDeclined:
		return fmt.Sprintf("@%s declined your share of %q", event.ActorHandle, event.RecipientName)
	case EventSharingRevoked:
		return fmt.Sprintf("Your access to %q was revoked", event.RecipientName)
	case EventAuthRequested:
		return fmt.Sprintf("@%s asked you to connect your %s account", event.ActorHandle, event.Platform)
	case EventAuthCompleted:
		return fmt.Sprintf("@%s connected their %s account for %q", event.ActorHandle, event.Platform, event.RecipientName)
	case EventAuthCancelled:
		return fmt.Sprintf("The %s connection request from @%s was cancelled", event.Platform, event.ActorHandle)
	default:
		return fmt.Sprintf("Update about %q", event.RecipientName)
	}
}

// renderBody produces the full plain-text message.
func renderBody(event Event) string {
	subject := renderSubject(event)
	switch event.Type {
	case EventSharingRequested:
		return subject + "\n\nAccept or decline from your sharing inbox."
	case EventAuthRequested:
		return subject + "\n\nOpen the request to authorize your account. The request expires if left unanswered."
	default:
		return subject
	}
}
