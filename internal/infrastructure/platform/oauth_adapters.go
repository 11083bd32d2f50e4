package platform

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/config"
)

const (
	todoistAuthURL  = "https://todoist.com/oauth/authorize"
	todoistTokenURL = "https://todoist.com/oauth/access_token"

	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
)

// TodoistAdapter handles Todoist OAuth credentials.
type TodoistAdapter struct {
	cfg *oauth2.Config
}

// NewTodoistAdapter creates a Todoist adapter from OAuth client settings.
func NewTodoistAdapter(cfg config.OAuthProviderConfig) *TodoistAdapter {
	return &TodoistAdapter{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"data:read_write"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  todoistAuthURL,
				TokenURL: todoistTokenURL,
			},
		},
	}
}

func (a *TodoistAdapter) Platform() recipient.PlatformType {
	return recipient.PlatformTodoist
}

func (a *TodoistAdapter) RefreshCredential(ctx context.Context, oldCredential string) (string, error) {
	return refreshWithConfig(ctx, a.cfg, oldCredential)
}

func (a *TodoistAdapter) ValidateCredentialShape(credential string) bool {
	_, err := ParseOAuthCredential(credential)
	return err == nil
}

// AuthCodeURL builds the provider consent URL for the given state token.
func (a *TodoistAdapter) AuthCodeURL(state string) string {
	return a.cfg.AuthCodeURL(state)
}

// Exchange trades the provider callback code for a stored credential.
func (a *TodoistAdapter) Exchange(ctx context.Context, code string) (string, error) {
	return exchangeWithConfig(ctx, a.cfg, code)
}

// GoogleCalendarAdapter handles Google Calendar OAuth credentials.
type GoogleCalendarAdapter struct {
	cfg *oauth2.Config
}

// NewGoogleCalendarAdapter creates a Google Calendar adapter from OAuth
// client settings.
func NewGoogleCalendarAdapter(cfg config.OAuthProviderConfig) *GoogleCalendarAdapter {
	return &GoogleCalendarAdapter{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/calendar.events"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  googleAuthURL,
				TokenURL: googleTokenURL,
			},
		},
	}
}

func (a *GoogleCalendarAdapter) Platform() recipient.PlatformType {
	return recipient.PlatformGoogleCalendar
}

func (a *GoogleCalendarAdapter) RefreshCredential(ctx context.Context, oldCredential string) (string, error) {
	return refreshWithConfig(ctx, a.cfg, oldCredential)
}

func (a *GoogleCalendarAdapter) ValidateCredentialShape(credential string) bool {
	_, err := ParseOAuthCredential(credential)
	return err == nil
}

// AuthCodeURL builds the provider consent URL for the given state token.
// Google requires offline access to issue a refresh token.
func (a *GoogleCalendarAdapter) AuthCodeURL(state string) string {
	return a.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades the provider callback code for a stored credential.
func (a *GoogleCalendarAdapter) Exchange(ctx context.Context, code string) (string, error) {
	return exchangeWithConfig(ctx, a.cfg, code)
}

func exchangeWithConfig(ctx context.Context, cfg *oauth2.Config, code string) (string, error) {
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	cred := &OAuthCredential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
	return cred.Encode()
}
