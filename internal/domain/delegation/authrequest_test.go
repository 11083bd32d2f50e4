package delegation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
)

func newPendingRequest(t *testing.T) *AuthRequest {
	t.Helper()
	q, err := NewAuthRequest(3, 4, recipient.PlatformGoogleCalendar, "Shared Calendar", 24*time.Hour)
	require.NoError(t, err)
	return q
}

func TestNewAuthRequest(t *testing.T) {
	q := newPendingRequest(t)

	assert.Equal(t, StatusPending, q.Status())
	assert.Equal(t, uint(3), q.RequesterPrincipalID())
	assert.Equal(t, uint(4), q.TargetPrincipalID())
	assert.Nil(t, q.CompletedRecipientID())
	assert.Contains(t, q.SID(), "areq_")
	assert.WithinDuration(t, biztime.NowUTC().Add(24*time.Hour), q.ExpiresAt(), 2*time.Second)
}

func TestNewAuthRequest_SelfTarget(t *testing.T) {
	_, err := NewAuthRequest(3, 3, recipient.PlatformTodoist, "Mine", 24*time.Hour)
	assert.ErrorIs(t, err, ErrSelfTarget)
}

func TestAuthRequest_IsExpired(t *testing.T) {
	q := newPendingRequest(t)

	assert.False(t, q.IsExpired(biztime.NowUTC()))
	assert.True(t, q.IsExpired(biztime.NowUTC().Add(25*time.Hour)))
	assert.True(t, q.IsExpired(q.ExpiresAt()))
}

func TestAuthRequest_CanBeCancelledBy(t *testing.T) {
	q := newPendingRequest(t)

	assert.True(t, q.CanBeCancelledBy(3))
	assert.True(t, q.CanBeCancelledBy(4))
	assert.False(t, q.CanBeCancelledBy(5))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to completed", StatusPending, StatusCompleted, true},
		{"pending to expired", StatusPending, StatusExpired, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"completed to expired", StatusCompleted, StatusExpired, false},
		{"expired to completed", StatusExpired, StatusCompleted, false},
		{"cancelled to pending", StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
