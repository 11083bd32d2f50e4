package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/config"
)

// ErrPlatformNotSupported is returned when no adapter is registered for a
// platform.
var ErrPlatformNotSupported = errors.New("platform not supported")

// OAuthAdapter extends Adapter for platforms that onboard through the OAuth
// consent flow.
type OAuthAdapter interface {
	Adapter
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
}

// Registry holds the adapter for each supported platform. It is built once
// at startup and read-only afterwards.
type Registry struct {
	adapters map[recipient.PlatformType]Adapter
}

// NewRegistry builds the registry with all supported platform adapters.
func NewRegistry(oauthCfg *config.OAuthConfig) *Registry {
	adapters := []Adapter{
		NewTodoistAdapter(oauthCfg.Todoist),
		NewGoogleCalendarAdapter(oauthCfg.GoogleCalendar),
		NewTrelloAdapter(),
		NewNotionAdapter(),
	}
	byPlatform := make(map[recipient.PlatformType]Adapter, len(adapters))
	for _, a := range adapters {
		byPlatform[a.Platform()] = a
	}
	return &Registry{adapters: byPlatform}
}

// Get returns the adapter for the platform.
func (r *Registry) Get(platform recipient.PlatformType) (Adapter, error) {
	a, ok := r.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlatformNotSupported, platform)
	}
	return a, nil
}

// NeedsRefresh reports whether the credential is an OAuth token past its
// expiry at the given instant. Static-key platforms never need a refresh.
func (r *Registry) NeedsRefresh(platform recipient.PlatformType, credential string, now time.Time) bool {
	if !platform.UsesOAuth() {
		return false
	}
	cred, err := ParseOAuthCredential(credential)
	if err != nil {
		return false
	}
	return cred.IsExpired(now)
}

// Refresh exchanges an expired credential through the platform's adapter.
func (r *Registry) Refresh(ctx context.Context, platform recipient.PlatformType, credential string) (string, error) {
	a, err := r.Get(platform)
	if err != nil {
		return "", err
	}
	return a.RefreshCredential(ctx, credential)
}

// ValidateCredentialShape checks credential material against the platform's
// expected shape. Unknown platforms fail the check.
func (r *Registry) ValidateCredentialShape(platform recipient.PlatformType, credential string) bool {
	a, err := r.Get(platform)
	if err != nil {
		return false
	}
	return a.ValidateCredentialShape(credential)
}

// AuthCodeURL builds the provider consent URL carrying the state token.
func (r *Registry) AuthCodeURL(platform recipient.PlatformType, state string) (string, error) {
	oa, err := r.GetOAuth(platform)
	if err != nil {
		return "", err
	}
	return oa.AuthCodeURL(state), nil
}

// Exchange trades an authorization code for an encoded OAuth credential.
func (r *Registry) Exchange(ctx context.Context, platform recipient.PlatformType, code string) (string, error) {
	oa, err := r.GetOAuth(platform)
	if err != nil {
		return "", err
	}
	return oa.Exchange(ctx, code)
}

// GetOAuth returns the adapter for the platform if it supports the OAuth
// consent flow.
func (r *Registry) GetOAuth(platform recipient.PlatformType) (OAuthAdapter, error) {
	a, err := r.Get(platform)
	if err != nil {
		return nil, err
	}
	oa, ok := a.(OAuthAdapter)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not use oauth", ErrPlatformNotSupported, platform)
	}
	return oa, nil
}
