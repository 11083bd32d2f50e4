// Package dto defines the request and response shapes of the delegation
// application service.
package dto

import "time"

// CreateAuthRequestRequest asks another principal to authenticate a
// platform on the requester's behalf.
type CreateAuthRequestRequest struct {
	RequesterPrincipalID uint   `json:"-"`
	TargetHandle         string `json:"target_handle" binding:"required"`
	PlatformType         string `json:"platform_type" binding:"required"`
	RecipientName        string `json:"recipient_name" binding:"required"`
}

// AuthRequestResponse is the external view of an auth request.
type AuthRequestResponse struct {
	ID                   string    `json:"id"`
	RequesterHandle      string    `json:"requester_handle"`
	TargetHandle         string    `json:"target_handle"`
	Platform             string    `json:"platform"`
	RecipientName        string    `json:"recipient_name"`
	Status               string    `json:"status"`
	ExpiresAt            time.Time `json:"expires_at"`
	CompletedRecipientID string    `json:"completed_recipient_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// CompleteAuthRequestRequest supplies the credential obtained by the target.
type CompleteAuthRequestRequest struct {
	CallerPrincipalID uint   `json:"-"`
	AuthRequestID     string `json:"-"`
	Credential        string `json:"credential" binding:"required"`
}

// CompleteAuthRequestResponse returns the request and the recipient created
// for the requester.
type CompleteAuthRequestResponse struct {
	AuthRequest *AuthRequestResponse `json:"auth_request"`
	RecipientID string               `json:"recipient_id"`
}

// ListAuthRequestsResponse groups requests by the caller's role.
type ListAuthRequestsResponse struct {
	Sent     []*AuthRequestResponse `json:"sent"`
	Received []*AuthRequestResponse `json:"received"`
}
