package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domainDelegation "github.com/taskpilot-inc/taskpilot/internal/domain/delegation"
	domainPrincipal "github.com/taskpilot-inc/taskpilot/internal/domain/principal"
	domainRecipient "github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
)

type mockRequestRepo struct {
	mock.Mock
}

func (m *mockRequestRepo) Create(ctx context.Context, q *domainDelegation.AuthRequest) error {
	return m.Called(ctx, q).Error(0)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id uint) (*domainDelegation.AuthRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainDelegation.AuthRequest), args.Error(1)
}

func (m *mockRequestRepo) GetBySID(ctx context.Context, sid string) (*domainDelegation.AuthRequest, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainDelegation.AuthRequest), args.Error(1)
}

func (m *mockRequestRepo) ListByRequester(ctx context.Context, requesterPrincipalID uint) ([]*domainDelegation.AuthRequest, error) {
	args := m.Called(ctx, requesterPrincipalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainDelegation.AuthRequest), args.Error(1)
}

func (m *mockRequestRepo) ListByTarget(ctx context.Context, targetPrincipalID uint) ([]*domainDelegation.AuthRequest, error) {
	args := m.Called(ctx, targetPrincipalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainDelegation.AuthRequest), args.Error(1)
}

func (m *mockRequestRepo) CompleteIf(ctx context.Context, id uint, completedRecipientID uint) error {
	return m.Called(ctx, id, completedRecipientID).Error(0)
}

func (m *mockRequestRepo) UpdateStatusIf(ctx context.Context, id uint, from, to domainDelegation.Status) error {
	return m.Called(ctx, id, from, to).Error(0)
}

func (m *mockRequestRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRequestRepo) CancelPendingByPrincipal(ctx context.Context, principalID uint) (int64, error) {
	args := m.Called(ctx, principalID)
	return args.Get(0).(int64), args.Error(1)
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

// acceptAllValidator approves any credential shape.
type acceptAllValidator struct{}

func (acceptAllValidator) ValidateCredentialShape(domainRecipient.PlatformType, string) bool {
	return true
}

// rejectAllValidator rejects every credential shape.
type rejectAllValidator struct{}

func (rejectAllValidator) ValidateCredentialShape(domainRecipient.PlatformType, string) bool {
	return false
}

// fixtures

func testPrincipal(id uint, handle string) *domainPrincipal.Principal {
	now := time.Now().UTC()
	return domainPrincipal.ReconstructPrincipal(id, handle, handle, "", 0, now, now)
}

func testAuthRequest(id uint, sid string, requesterID, targetID uint, status domainDelegation.Status, expiresAt time.Time) *domainDelegation.AuthRequest {
	now := time.Now().UTC()
	return domainDelegation.ReconstructAuthRequest(id, sid, requesterID, targetID,
		domainRecipient.PlatformTodoist, "Work Todoist", status, expiresAt, nil, now, now)
}
