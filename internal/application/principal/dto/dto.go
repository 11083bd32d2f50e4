// Package dto contains data transfer objects for the principal feature
package dto

import "time"

// RegisterPrincipalRequest registers a new principal.
type RegisterPrincipalRequest struct {
	Handle      string `json:"handle" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

// PrincipalResponse is the outward representation of a principal.
type PrincipalResponse struct {
	ID          uint      `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateContactRequest sets the notification addresses for a principal.
type UpdateContactRequest struct {
	PrincipalID    uint    `json:"-"`
	Email          *string `json:"email"`
	TelegramChatID *int64  `json:"telegram_chat_id"`
}

// RemovePrincipalResponse reports what the removal cascade touched.
type RemovePrincipalResponse struct {
	RevokedAuthorizations int `json:"revoked_authorizations"`
	CancelledAuthRequests int `json:"cancelled_auth_requests"`
}
