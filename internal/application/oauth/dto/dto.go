// Package dto contains data transfer objects for the oauth handshake feature
package dto

// BeginHandshakeRequest starts an OAuth consent flow for a principal.
type BeginHandshakeRequest struct {
	PrincipalID  uint   `json:"-"`
	PlatformType string `json:"platform_type" binding:"required"`
}

// BeginHandshakeResponse carries the provider consent URL the principal
// must visit.
type BeginHandshakeResponse struct {
	StateToken string `json:"state_token"`
	AuthURL    string `json:"auth_url"`
}

// FinishHandshakeRequest is the provider callback payload.
type FinishHandshakeRequest struct {
	StateToken   string `json:"state" binding:"required"`
	ExchangeCode string `json:"code" binding:"required"`
}

// FinishHandshakeResponse reports which principal the handshake belonged to.
type FinishHandshakeResponse struct {
	PrincipalID uint `json:"-"`
	Completed   bool `json:"completed"`
}

// CompleteOAuthRecipientRequest turns a finished handshake into a personal
// recipient by consuming the stored exchange code.
type CompleteOAuthRecipientRequest struct {
	PrincipalID  uint   `json:"-"`
	PlatformType string `json:"platform_type" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// CompleteOAuthRecipientResponse returns the recipient created from the
// exchanged token.
type CompleteOAuthRecipientResponse struct {
	RecipientID  string `json:"recipient_id"`
	Name         string `json:"name"`
	PlatformType string `json:"platform_type"`
}
