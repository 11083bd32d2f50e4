// Package dto defines the request and response shapes of the recipient
// application service.
package dto

import "time"

// CreateRecipientRequest registers a personally authenticated recipient
// with directly supplied credential material.
type CreateRecipientRequest struct {
	OwnerPrincipalID uint   `json:"-"`
	Name             string `json:"name" binding:"required"`
	PlatformType     string `json:"platform_type" binding:"required"`
	Credential       string `json:"credential" binding:"required"`
	PlatformConfig   string `json:"platform_config"`
}

// RecipientResponse is the external view of a recipient. Credentials never
// appear here.
type RecipientResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Platform   string    `json:"platform"`
	IsPersonal bool      `json:"is_personal"`
	Enabled    bool      `json:"enabled"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpdateRecipientRequest renames or toggles a recipient.
type UpdateRecipientRequest struct {
	CallerPrincipalID uint    `json:"-"`
	RecipientID       string  `json:"-"`
	Name              *string `json:"name"`
	Enabled           *bool   `json:"enabled"`
}

// ListRecipientsResponse lists the caller's recipients.
type ListRecipientsResponse struct {
	Recipients []*RecipientResponse `json:"recipients"`
}
