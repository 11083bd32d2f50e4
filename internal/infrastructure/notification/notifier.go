package notification

import (
	"context"
	"fmt"

	delegationUsecases "github.com/taskpilot-inc/taskpilot/internal/application/delegation/usecases"
	sharingUsecases "github.com/taskpilot-inc/taskpilot/internal/application/sharing/usecases"
	"github.com/taskpilot-inc/taskpilot/internal/domain/principal"
)

// PrincipalNotifier adapts the dispatcher to the application-layer notifier
// ports. It loads the addressee so channel dispatchers have contact details
// to deliver to.
type PrincipalNotifier struct {
	principalRepo principal.Repository
	dispatcher    Dispatcher
}

// NewPrincipalNotifier creates a notifier backed by the given dispatcher.
func NewPrincipalNotifier(principalRepo principal.Repository, dispatcher Dispatcher) *PrincipalNotifier {
	return &PrincipalNotifier{
		principalRepo: principalRepo,
		dispatcher:    dispatcher,
	}
}

func (n *PrincipalNotifier) dispatch(ctx context.Context, eventType EventType, toPrincipalID uint, actorHandle, recipientName, platform string) error {
	to, err := n.principalRepo.GetByID(ctx, toPrincipalID)
	if err != nil {
		return fmt.Errorf("failed to load notification addressee: %w", err)
	}
	return n.dispatcher.Dispatch(ctx, Event{
		Type:          eventType,
		To:            to,
		ActorHandle:   actorHandle,
		RecipientName: recipientName,
		Platform:      platform,
	})
}

// NotifyShareRequested tells the grantee a grant is waiting for them.
func (n *PrincipalNotifier) NotifyShareRequested(ctx context.Context, event sharingUsecases.ShareEvent) error {
	return n.dispatch(ctx, EventSharingRequested, event.ToPrincipalID, event.ActorHandle, event.RecipientName, event.Platform)
}

// NotifyShareAccepted tells the owner their grant was accepted.
func (n *PrincipalNotifier) NotifyShareAccepted(ctx context.Context, event sharingUsecases.ShareEvent) error {
	return n.dispatch(ctx, EventSharingAccepted, event.ToPrincipalID, event.ActorHandle, event.RecipientName, event.Platform)
}

// NotifyShareDeclined tells the owner their grant was declined.
func (n *PrincipalNotifier) NotifyShareDeclined(ctx context.Context, event sharingUsecases.ShareEvent) error {
	return n.dispatch(ctx, EventSharingDeclined, event.ToPrincipalID, event.ActorHandle, event.RecipientName, event.Platform)
}

// NotifyShareRevoked tells the grantee their access is gone.
func (n *PrincipalNotifier) NotifyShareRevoked(ctx context.Context, event sharingUsecases.ShareEvent) error {
	return n.dispatch(ctx, EventSharingRevoked, event.ToPrincipalID, event.ActorHandle, event.RecipientName, event.Platform)
}

// NotifyAuthRequested tells the target someone asked them to authenticate.
func (n *PrincipalNotifier) NotifyAuthRequested(ctx context.Context, event delegationUsecases.AuthRequestEvent) error {
	return n.dispatch(ctx, EventAuthRequested, event.ToPrincipalID, event.ActorHandle, event.RecipientName, event.Platform)
}

// NotifyAuthCompleted tells the requester their recipient is ready.
func (n *PrincipalNotifier) NotifyAuthCompleted(ctx context.Context, event delegationUsecases.AuthRequestEvent) error {
	return n.dispatch(ctx, EventAuthCompleted, event.ToPrincipalID, event.ActorHandle, event.RecipientName, event.Platform)
}

// NotifyAuthCancelled tells the other participant the request was withdrawn.
func (n *PrincipalNotifier) NotifyAuthCancelled(ctx context.Context, event delegationUsecases.AuthRequestEvent) error {
	return n.dispatch(ctx, EventAuthCancelled, event.ToPrincipalID, event.ActorHandle, event.RecipientName, event.Platform)
}
