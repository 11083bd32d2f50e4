package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	sharingUsecases "github.com/taskpilot-inc/taskpilot/internal/application/sharing/usecases"
	"github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	"github.com/taskpilot-inc/taskpilot/internal/shared/logger"
)

type mockPrincipalRepo struct {
	mock.Mock
}

func (m *mockPrincipalRepo) Create(ctx context.Context, p *principal.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPrincipalRepo) GetByID(ctx context.Context, id uint) (*principal.Principal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*principal.Principal), args.Error(1)
}

func (m *mockPrincipalRepo) GetByHandle(ctx context.Context, handle string) (*principal.Principal, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*principal.Principal), args.Error(1)
}

func (m *mockPrincipalRepo) Update(ctx context.Context, p *principal.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPrincipalRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type recordingDispatcher struct {
	events []Event
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event Event) error {
	d.events = append(d.events, event)
	return d.err
}

func testAddressee(id uint) *principal.Principal {
	now := biztime.NowUTC()
	return principal.ReconstructPrincipal(id, "bob", "Bob", "bob@example.com", 0, now, now)
}

func TestPrincipalNotifier_LoadsAddresseeAndDispatches(t *testing.T) {
	repo := new(mockPrincipalRepo)
	repo.On("GetByID", mock.Anything, uint(2)).Return(testAddressee(2), nil)
	dispatcher := &recordingDispatcher{}
	n := NewPrincipalNotifier(repo, dispatcher)

	err := n.NotifyShareRequested(context.Background(), sharingUsecases.ShareEvent{
		ToPrincipalID: 2,
		ActorHandle:   "alice",
		RecipientName: "Work Todoist",
		Platform:      "todoist",
	})

	require.NoError(t, err)
	require.Len(t, dispatcher.events, 1)
	event := dispatcher.events[0]
	assert.Equal(t, EventSharingRequested, event.Type)
	assert.Equal(t, uint(2), event.To.ID())
	assert.Equal(t, "alice", event.ActorHandle)
}

func TestPrincipalNotifier_UnknownAddressee(t *testing.T) {
	repo := new(mockPrincipalRepo)
	repo.On("GetByID", mock.Anything, uint(9)).Return(nil, principal.ErrPrincipalNotFound)
	dispatcher := &recordingDispatcher{}
	n := NewPrincipalNotifier(repo, dispatcher)

	err := n.NotifyShareRevoked(context.Background(), sharingUsecases.ShareEvent{ToPrincipalID: 9})

	assert.Error(t, err)
	assert.Empty(t, dispatcher.events)
}

func TestCompositeDispatcher_SwallowsChannelFailures(t *testing.T) {
	failing := &recordingDispatcher{err: assert.AnError}
	working := &recordingDispatcher{}
	composite := NewCompositeDispatcher(logger.NewLogger(), failing, working)

	err := composite.Dispatch(context.Background(), Event{
		Type: EventSharingAccepted,
		To:   testAddressee(1),
	})

	assert.NoError(t, err)
	assert.Len(t, failing.events, 1)
	assert.Len(t, working.events, 1)
}

func TestRenderSubject_CoversEveryEventType(t *testing.T) {
	for _, eventType := range []EventType{
		EventSharingRequested, EventSharingAccepted, EventSharingDeclined,
		EventSharingRevoked, EventAuthRequested, EventAuthCompleted, EventAuthCancelled,
	} {
		subject := renderSubject(Event{
			Type:          eventType,
			ActorHandle:   "alice",
			RecipientName: "Work Todoist",
			Platform:      "todoist",
		})
		assert.NotEmpty(t, subject, string(eventType))
	}
}
