// Package platform hosts the per-platform credential adapters. Task CRUD
// against the platforms lives elsewhere; this package covers only the
// credential concerns the authorization subsystem needs: refresh and shape
// validation.
package platform

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/oauth2"

	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
)

// ErrRefreshNotSupported is returned by adapters for platforms whose
// credentials are static API keys with nothing to refresh
var ErrRefreshNotSupported = errors.New("platform does not support credential refresh")

// ErrRefreshFailed wraps a failed refresh call against the platform
var ErrRefreshFailed = errors.New("credential refresh failed")

// Adapter is the credential-side contract each supported platform
// implements.
type Adapter interface {
	// Platform identifies the adapter.
	Platform() recipient.PlatformType
	// RefreshCredential exchanges an expired credential for a fresh one.
	// The credential is the JSON-encoded oauth2 token for OAuth platforms.
	RefreshCredential(ctx context.Context, oldCredential string) (string, error)
	// ValidateCredentialShape cheaply rejects malformed credential input
	// before it is stored.
	ValidateCredentialShape(credential string) bool
}

// OAuthCredential is the stored shape of an OAuth-backed credential.
type OAuthCredential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// ParseOAuthCredential decodes a stored OAuth credential.
func ParseOAuthCredential(credential string) (*OAuthCredential, error) {
	var c OAuthCredential
	if err := json.Unmarshal([]byte(credential), &c); err != nil {
		return nil, err
	}
	if c.AccessToken == "" {
		return nil, errors.New("credential has no access token")
	}
	return &c, nil
}

// Encode serializes the credential for storage.
func (c *OAuthCredential) Encode() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// IsExpired reports whether the access token needs a refresh at the given
// instant. A zero expiry means the token does not expire.
func (c *OAuthCredential) IsExpired(now time.Time) bool {
	return !c.Expiry.IsZero() && !now.Before(c.Expiry)
}

// oauthToken converts to the x/oauth2 representation for refresh calls.
func (c *OAuthCredential) oauthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
	}
}

// refreshWithConfig runs the standard oauth2 refresh flow and re-encodes
// the result. Shared by the OAuth-backed adapters.
func refreshWithConfig(ctx context.Context, cfg *oauth2.Config, oldCredential string) (string, error) {
	cred, err := ParseOAuthCredential(oldCredential)
	if err != nil {
		return "", errors.Join(ErrRefreshFailed, err)
	}
	if cred.RefreshToken == "" {
		return "", ErrRefreshNotSupported
	}

	// Force the token source to refresh by presenting an expired token.
	stale := cred.oauthToken()
	stale.Expiry = time.Now().Add(-time.Minute)

	fresh, err := cfg.TokenSource(ctx, stale).Token()
	if err != nil {
		return "", errors.Join(ErrRefreshFailed, err)
	}

	renewed := &OAuthCredential{
		AccessToken:  fresh.AccessToken,
		RefreshToken: fresh.RefreshToken,
		Expiry:       fresh.Expiry,
	}
	if renewed.RefreshToken == "" {
		// Some providers omit the refresh token on renewal; keep the old one.
		renewed.RefreshToken = cred.RefreshToken
	}
	return renewed.Encode()
}
