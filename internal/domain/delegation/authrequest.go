// Package delegation models delegated-authentication requests: asking a
// different principal to authenticate a platform on the requester's behalf.
package delegation

import (
	"fmt"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	"github.com/taskpilot-inc/taskpilot/internal/shared/id"
)

// Status is the lifecycle state of an AuthRequest.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// validTransitions lists every legal status move. All non-pending states are
// terminal.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusExpired, StatusCancelled},
	StatusCompleted: {},
	StatusExpired:   {},
	StatusCancelled: {},
}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted, StatusExpired, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown auth request status: %q", s)
	}
}

// String returns the wire representation.
func (s Status) String() string { return string(s) }

// CanTransition reports whether the move from -> to is legal.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AuthRequest is the delegated-authentication aggregate root.
//
// Invariant: on completion the new recipient is owned by the requester,
// never by the target who performed the authentication.
type AuthRequest struct {
	id                   uint
	sid                  string // Stripe-style ID: areq_xxx
	requesterPrincipalID uint
	targetPrincipalID    uint
	platformType         recipient.PlatformType
	recipientName        string
	status               Status
	expiresAt            time.Time
	completedRecipientID *uint
	createdAt            time.Time
	updatedAt            time.Time
}

// NewAuthRequest creates a pending request with the given TTL.
func NewAuthRequest(requesterPrincipalID, targetPrincipalID uint, platform recipient.PlatformType, recipientName string, ttl time.Duration) (*AuthRequest, error) {
	if requesterPrincipalID == 0 {
		return nil, fmt.Errorf("requester principal ID is required")
	}
	if targetPrincipalID == 0 {
		return nil, fmt.Errorf("target principal ID is required")
	}
	if requesterPrincipalID == targetPrincipalID {
		return nil, ErrSelfTarget
	}
	if recipientName == "" {
		return nil, fmt.Errorf("recipient name is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("TTL must be positive")
	}

	sid, err := id.NewAuthRequestID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &AuthRequest{
		sid:                  sid,
		requesterPrincipalID: requesterPrincipalID,
		targetPrincipalID:    targetPrincipalID,
		platformType:         platform,
		recipientName:        recipientName,
		status:               StatusPending,
		expiresAt:            now.Add(ttl),
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

// ReconstructAuthRequest reconstructs from persistence
func ReconstructAuthRequest(
	requestID uint,
	sid string,
	requesterPrincipalID uint,
	targetPrincipalID uint,
	platformType recipient.PlatformType,
	recipientName string,
	status Status,
	expiresAt time.Time,
	completedRecipientID *uint,
	createdAt, updatedAt time.Time,
) *AuthRequest {
	return &AuthRequest{
		id:                   requestID,
		sid:                  sid,
		requesterPrincipalID: requesterPrincipalID,
		targetPrincipalID:    targetPrincipalID,
		platformType:         platformType,
		recipientName:        recipientName,
		status:               status,
		expiresAt:            expiresAt,
		completedRecipientID: completedRecipientID,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

// Getters
func (q *AuthRequest) ID() uint                             { return q.id }
func (q *AuthRequest) SID() string                          { return q.sid }
func (q *AuthRequest) RequesterPrincipalID() uint           { return q.requesterPrincipalID }
func (q *AuthRequest) TargetPrincipalID() uint              { return q.targetPrincipalID }
func (q *AuthRequest) PlatformType() recipient.PlatformType { return q.platformType }
func (q *AuthRequest) RecipientName() string                { return q.recipientName }
func (q *AuthRequest) Status() Status                       { return q.status }
func (q *AuthRequest) ExpiresAt() time.Time                 { return q.expiresAt }
func (q *AuthRequest) CompletedRecipientID() *uint          { return q.completedRecipientID }
func (q *AuthRequest) CreatedAt() time.Time                 { return q.createdAt }
func (q *AuthRequest) UpdatedAt() time.Time                 { return q.updatedAt }

// SetID sets the request ID (only for persistence layer use)
func (q *AuthRequest) SetID(requestID uint) { q.id = requestID }

// IsExpired reports whether the TTL has elapsed at the given instant.
func (q *AuthRequest) IsExpired(now time.Time) bool {
	return !now.Before(q.expiresAt)
}

// CanBeCancelledBy reports whether the caller may cancel: requester or
// target, while pending.
func (q *AuthRequest) CanBeCancelledBy(callerPrincipalID uint) bool {
	return callerPrincipalID == q.requesterPrincipalID || callerPrincipalID == q.targetPrincipalID
}
