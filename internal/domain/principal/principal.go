// Package principal models the stable external identities using the system.
package principal

import (
	"fmt"
	"strings"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
)

// Principal represents a stable identity using the system. Every recipient,
// authorization and auth request references principals by internal ID.
type Principal struct {
	id             uint
	handle         string // unique external handle, e.g. "@alice"
	displayName    string
	email          string // optional, for email notifications
	telegramChatID int64  // optional, for bot notifications
	createdAt      time.Time
	updatedAt      time.Time
}

// NewPrincipal creates a new principal from an external handle.
func NewPrincipal(handle, displayName string) (*Principal, error) {
	handle = NormalizeHandle(handle)
	if handle == "" {
		return nil, fmt.Errorf("handle is required")
	}

	now := biztime.NowUTC()
	return &Principal{
		handle:      handle,
		displayName: displayName,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPrincipal reconstructs from persistence
func ReconstructPrincipal(id uint, handle, displayName, email string, telegramChatID int64, createdAt, updatedAt time.Time) *Principal {
	return &Principal{
		id:             id,
		handle:         handle,
		displayName:    displayName,
		email:          email,
		telegramChatID: telegramChatID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// NormalizeHandle lowercases a handle and strips a leading "@" so that
// lookups are insensitive to how the front end quotes it.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}

func (p *Principal) ID() uint              { return p.id }
func (p *Principal) Handle() string        { return p.handle }
func (p *Principal) DisplayName() string   { return p.displayName }
func (p *Principal) Email() string         { return p.email }
func (p *Principal) TelegramChatID() int64 { return p.telegramChatID }
func (p *Principal) CreatedAt() time.Time  { return p.createdAt }
func (p *Principal) UpdatedAt() time.Time  { return p.updatedAt }

// SetID sets the principal ID (only for persistence layer use)
func (p *Principal) SetID(id uint) { p.id = id }

// Rename updates the display name.
func (p *Principal) Rename(displayName string) {
	p.displayName = displayName
	p.updatedAt = biztime.NowUTC()
}

// SetEmail updates the notification email address.
func (p *Principal) SetEmail(email string) {
	p.email = email
	p.updatedAt = biztime.NowUTC()
}

// SetTelegramChatID links the principal to a Telegram chat for
// notifications.
func (p *Principal) SetTelegramChatID(chatID int64) {
	p.telegramChatID = chatID
	p.updatedAt = biztime.NowUTC()
}
