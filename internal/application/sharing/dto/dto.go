// Package dto defines the request and response shapes of the sharing
// application service.
package dto

import (
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/domain/sharing"
)

// CreateSharingRequest asks to share an owned recipient with another
// principal.
type CreateSharingRequest struct {
	OwnerPrincipalID uint   `json:"-"`
	RecipientID      string `json:"recipient_id" binding:"required"`
	GranteeHandle    string `json:"grantee_handle" binding:"required"`
	PermissionLevel  string `json:"permission_level" binding:"required"`
}

// AuthorizationResponse is the external view of a shared authorization.
// Internal numeric IDs never leave the application layer.
type AuthorizationResponse struct {
	ID              string     `json:"id"`
	OwnerHandle     string     `json:"owner_handle"`
	GranteeHandle   string     `json:"grantee_handle"`
	RecipientID     string     `json:"recipient_id"`
	RecipientName   string     `json:"recipient_name"`
	Platform        string     `json:"platform"`
	PermissionLevel string     `json:"permission_level"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastUsedAt      *time.Time `json:"last_used_at,omitempty"`
}

// AcceptShareRequest accepts a pending grant, naming the shared recipient
// that is created in the grantee's list.
type AcceptShareRequest struct {
	CallerPrincipalID uint   `json:"-"`
	AuthorizationID   string `json:"-"`
	RecipientName     string `json:"recipient_name"`
}

// AcceptShareResponse returns the grant and the derived shared recipient.
type AcceptShareResponse struct {
	Authorization *AuthorizationResponse `json:"authorization"`
	RecipientID   string                 `json:"recipient_id"`
}

// CheckPermissionRequest asks whether the caller may perform an action
// through a recipient.
type CheckPermissionRequest struct {
	CallerPrincipalID uint
	RecipientID       string
	Action            sharing.Action
}

// CheckPermissionResponse reports the outcome of a permission check.
type CheckPermissionResponse struct {
	Allowed         bool   `json:"allowed"`
	PermissionLevel string `json:"permission_level,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// ListAuthorizationsResponse groups grants by the caller's role.
type ListAuthorizationsResponse struct {
	Owned   []*AuthorizationResponse `json:"owned"`
	Granted []*AuthorizationResponse `json:"granted"`
}
