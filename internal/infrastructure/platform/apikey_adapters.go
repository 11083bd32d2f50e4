package platform

import (
	"context"
	"strings"

	"github.com/taskpilot-inc/taskpilot/internal/domain/recipient"
)

// TrelloAdapter handles Trello API-key credentials. Trello keys are static;
// refresh is not supported.
type TrelloAdapter struct{}

// NewTrelloAdapter creates a Trello adapter.
func NewTrelloAdapter() *TrelloAdapter {
	return &TrelloAdapter{}
}

func (a *TrelloAdapter) Platform() recipient.PlatformType {
	return recipient.PlatformTrello
}

func (a *TrelloAdapter) RefreshCredential(_ context.Context, _ string) (string, error) {
	return "", ErrRefreshNotSupported
}

// ValidateCredentialShape expects "key:token" as issued by the Trello
// developer console.
func (a *TrelloAdapter) ValidateCredentialShape(credential string) bool {
	key, token, ok := strings.Cut(credential, ":")
	return ok && key != "" && token != ""
}

// NotionAdapter handles Notion integration-token credentials. Integration
// tokens are static; refresh is not supported.
type NotionAdapter struct{}

// NewNotionAdapter creates a Notion adapter.
func NewNotionAdapter() *NotionAdapter {
	return &NotionAdapter{}
}

func (a *NotionAdapter) Platform() recipient.PlatformType {
	return recipient.PlatformNotion
}

func (a *NotionAdapter) RefreshCredential(_ context.Context, _ string) (string, error) {
	return "", ErrRefreshNotSupported
}

// ValidateCredentialShape expects a non-empty "secret_" or "ntn_" prefixed
// integration token.
func (a *NotionAdapter) ValidateCredentialShape(credential string) bool {
	return strings.HasPrefix(credential, "secret_") || strings.HasPrefix(credential, "ntn_")
}
