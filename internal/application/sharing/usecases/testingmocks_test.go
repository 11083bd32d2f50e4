package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	domainSharing "github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) Create(ctx context.Context, a *domainSharing.SharedAuthorization) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAuthRepo) GetByID(ctx context.Context, id uint) (*domainSharing.SharedAuthorization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainSharing.SharedAuthorization), args.Error(1)
}

func (m *mockAuthRepo) GetBySID(ctx context.Context, sid string) (*domainSharing.SharedAuthorization, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainSharing.SharedAuthorization), args.Error(1)
}

func (m *mockAuthRepo) ListByOwner(ctx context.Context, ownerPrincipalID uint) ([]*domainSharing.SharedAuthorization, error) {
	args := m.Called(ctx, ownerPrincipalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainSharing.SharedAuthorization), args.Error(1)
}

func (m *mockAuthRepo) ListByGrantee(ctx context.Context, granteePrincipalID uint) ([]*domainSharing.SharedAuthorization, error) {
	args := m.Called(ctx, granteePrincipalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainSharing.SharedAuthorization), args.Error(1)
}

func (m *mockAuthRepo) UpdateStatusIf(ctx context.Context, id uint, from []domainSharing.Status, to domainSharing.Status) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockAuthRepo) TouchLastUsed(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAuthRepo) DeleteByOwnerRecipientID(ctx context.Context, recipientID uint) error {
	return m.Called(ctx, recipientID).Error(0)
}

func (m *mockAuthRepo) ListByOwnerRecipientID(ctx context.Context, recipientID uint) ([]*domainSharing.SharedAuthorization, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainSharing.SharedAuthorization), args.Error(1)
}

func (m *mockAuthRepo) ListActiveByPrincipal(ctx context.Context, principalID uint) ([]*domainSharing.SharedAuthorization, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainSharing.SharedAuthorization), args.Error(1)
}

type mockRecipientRepo struct {
	mock.Mock
}

func (m *mockRecipientRepo) Create(ctx context.Context, r *domainRecipient.Recipient) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRecipientRepo) GetByID(ctx context.Context, id uint) (*domainRecipient.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainRecipient.Recipient), args.Error(1)
}

func (m *mockRecipientRepo) GetBySID(ctx context.Context, sid string) (*domainRecipient.Recipient, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainRecipient.Recipient), args.Error(1)
}

func (m *mockRecipientRepo) ListByOwner(ctx context.Context, ownerPrincipalID uint) ([]*domainRecipient.Recipient, error) {
	args := m.Called(ctx, ownerPrincipalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainRecipient.Recipient), args.Error(1)
}

func (m *mockRecipientRepo) Update(ctx context.Context, r *domainRecipient.Recipient) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRecipientRepo) UpdateCredential(ctx context.Context, id uint, credential string) error {
	return m.Called(ctx, id, credential).Error(0)
}

func (m *mockRecipientRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRecipientRepo) FindBySharedAuthorizationID(ctx context.Context, authorizationID uint) ([]*domainRecipient.Recipient, error) {
	args := m.Called(ctx, authorizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainRecipient.Recipient), args.Error(1)
}

func (m *mockRecipientRepo) DeleteBySharedAuthorizationID(ctx context.Context, authorizationID uint) error {
	return m.Called(ctx, authorizationID).Error(0)
}

type mockPrincipalRepo struct {
	mock.Mock
}

func (m *mockPrincipalRepo) Create(ctx context.Context, p *domainPrincipal.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPrincipalRepo) GetByID(ctx context.Context, id uint) (*domainPrincipal.Principal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainPrincipal.Principal), args.Error(1)
}

func (m *mockPrincipalRepo) GetByHandle(ctx context.Context, handle string) (*domainPrincipal.Principal, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainPrincipal.Principal), args.Error(1)
}

func (m *mockPrincipalRepo) Update(ctx context.Context, p *domainPrincipal.Principal) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPrincipalRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// fakeTxManager runs the transaction body directly against the same context.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// noopNotifier satisfies Notifier and records nothing.
type noopNotifier struct{}

func (noopNotifier) NotifyShareRequested(context.Context, ShareEvent) error { return nil }
func (noopNotifier) NotifyShareAccepted(context.Context, ShareEvent) error  { return nil }
func (noopNotifier) NotifyShareDeclined(context.Context, ShareEvent) error  { return nil }
func (noopNotifier) NotifyShareRevoked(context.Context, ShareEvent) error   { return nil }

// test fixtures

func testPrincipal(id uint, handle string) *domainPrincipal.Principal {
	now := time.Now().UTC()
	return domainPrincipal.ReconstructPrincipal(id, handle, handle, "", 0, now, now)
}

func testPersonalRecipient(id, ownerID uint, sid string) *domainRecipient.Recipient {
	now := time.Now().UTC()
	return domainRecipient.ReconstructRecipient(id, sid, ownerID, "Work Todoist", domainRecipient.PlatformTodoist,
		`{"access_token":"at"}`, "", true, true, nil, now, now)
}

func testSharedRecipient(id, ownerID, authID uint, sid string) *domainRecipient.Recipient {
	now := time.Now().UTC()
	return domainRecipient.ReconstructRecipient(id, sid, ownerID, "Alice's Todoist", domainRecipient.PlatformTodoist,
		"", "", false, true, &authID, now, now)
}

func testAuthorization(id uint, sid string, ownerID, granteeID, recipientID uint, status domainSharing.Status) *domainSharing.SharedAuthorization {
	now := time.Now().UTC()
	return domainSharing.ReconstructSharedAuthorization(id, sid, ownerID, granteeID, recipientID,
		domainSharing.PermissionUse, status, now, now, nil)
}
