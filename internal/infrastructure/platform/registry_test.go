package platform

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
	"github.com/taskpilot-inc/taskpilot/internal/shared/config"
)

func testRegistry() *Registry {
	return NewRegistry(&config.OAuthConfig{
		Todoist: config.OAuthProviderConfig{
			ClientID:     "todoist-client",
			ClientSecret: "todoist-secret",
			RedirectURL:  "https://app.example.com/oauth/callback",
		},
		GoogleCalendar: config.OAuthProviderConfig{
			ClientID:     "google-client",
			ClientSecret: "google-secret",
			RedirectURL:  "https://app.example.com/oauth/callback",
		},
	})
}

func TestRegistryGet(t *testing.T) {
	reg := testRegistry()

	for _, pt := range recipient.AllPlatformTypes() {
		a, err := reg.Get(pt)
		require.NoError(t, err)
		assert.Equal(t, pt, a.Platform())
	}

	_, err := reg.Get(recipient.PlatformType("jira"))
	assert.ErrorIs(t, err, ErrPlatformNotSupported)
}

func TestRegistryGetOAuth(t *testing.T) {
	reg := testRegistry()

	oa, err := reg.GetOAuth(recipient.PlatformTodoist)
	require.NoError(t, err)
	assert.Contains(t, oa.AuthCodeURL("state-123"), "state=state-123")

	_, err = reg.GetOAuth(recipient.PlatformTrello)
	assert.ErrorIs(t, err, ErrPlatformNotSupported)
}

func TestOAuthCredentialRoundTrip(t *testing.T) {
	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	cred := &OAuthCredential{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		Expiry:       expiry,
	}
	encoded, err := cred.Encode()
	require.NoError(t, err)

	parsed, err := ParseOAuthCredential(encoded)
	require.NoError(t, err)
	assert.Equal(t, "at-1", parsed.AccessToken)
	assert.Equal(t, "rt-1", parsed.RefreshToken)
	assert.True(t, parsed.Expiry.Equal(expiry))
}

func TestOAuthCredentialIsExpired(t *testing.T) {
	now := time.Now()

	fresh := &OAuthCredential{AccessToken: "at", Expiry: now.Add(time.Minute)}
	assert.False(t, fresh.IsExpired(now))

	stale := &OAuthCredential{AccessToken: "at", Expiry: now.Add(-time.Minute)}
	assert.True(t, stale.IsExpired(now))

	// Exact expiry instant counts as expired.
	assert.True(t, stale.IsExpired(stale.Expiry))

	// Zero expiry never expires.
	static := &OAuthCredential{AccessToken: "at"}
	assert.False(t, static.IsExpired(now))
}

func TestParseOAuthCredentialRejectsBadInput(t *testing.T) {
	_, err := ParseOAuthCredential("not-json")
	assert.Error(t, err)

	empty, err := json.Marshal(OAuthCredential{})
	require.NoError(t, err)
	_, err = ParseOAuthCredential(string(empty))
	assert.Error(t, err)
}

func TestStaticKeyAdaptersRejectRefresh(t *testing.T) {
	for _, a := range []Adapter{NewTrelloAdapter(), NewNotionAdapter()} {
		_, err := a.RefreshCredential(context.Background(), "whatever")
		assert.ErrorIs(t, err, ErrRefreshNotSupported)
	}
}

func TestValidateCredentialShape(t *testing.T) {
	reg := testRegistry()

	todoist, err := reg.Get(recipient.PlatformTodoist)
	require.NoError(t, err)
	assert.True(t, todoist.ValidateCredentialShape(`{"access_token":"at"}`))
	assert.False(t, todoist.ValidateCredentialShape("raw-token"))

	trello, err := reg.Get(recipient.PlatformTrello)
	require.NoError(t, err)
	assert.True(t, trello.ValidateCredentialShape("key:token"))
	assert.False(t, trello.ValidateCredentialShape("keyonly"))
	assert.False(t, trello.ValidateCredentialShape(":token"))

	notion, err := reg.Get(recipient.PlatformNotion)
	require.NoError(t, err)
	assert.True(t, notion.ValidateCredentialShape("secret_abc123"))
	assert.True(t, notion.ValidateCredentialShape("ntn_abc123"))
	assert.False(t, notion.ValidateCredentialShape("abc123"))
}
