// Package recipient models task destinations: personally authenticated
// endpoints and shared pointers to another principal's authentication.
package recipient

import (
	"fmt"
	"time"

	"github.com/taskpilot-inc/taskpilot/internal/shared/biztime"
	"github.com/taskpilot-inc/taskpilot/internal/shared/id"
)

// Recipient represents a named task destination aggregate root.
//
// A personal recipient carries the credential used against the platform API.
// A shared recipient carries no credential at all; it points at an accepted
// SharedAuthorization and resolution follows that pointer to the owner's
// personal recipient. The constructors are the only way to build recipients,
// which keeps the credential-emptiness invariant out of reach of callers.
type Recipient struct {
	id                    uint
	sid                   string // Stripe-style ID: rcp_xxx
	ownerPrincipalID      uint
	name                  string
	platformType          PlatformType
	credential            string // secret, empty for shared recipients
	platformConfig        string // opaque settings blob (JSON)
	isPersonal            bool
	enabled               bool
	sharedAuthorizationID *uint
	createdAt             time.Time
	updatedAt             time.Time
}

// NewPersonalRecipient creates a personally-authenticated recipient.
func NewPersonalRecipient(ownerPrincipalID uint, name string, platform PlatformType, credential, platformConfig string) (*Recipient, error) {
	if ownerPrincipalID == 0 {
		return nil, fmt.Errorf("owner principal ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("recipient name is required")
	}
	if credential == "" {
		return nil, fmt.Errorf("credential is required for a personal recipient")
	}

	sid, err := id.NewRecipientID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	now := biztime.NowUTC()
	return &Recipient{
		sid:              sid,
		ownerPrincipalID: ownerPrincipalID,
		name:             name,
		platformType:     platform,
		credential:       credential,
		platformConfig:   platformConfig,
		isPersonal:       true,
		enabled:          true,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// NewSharedRecipient creates a shared-pointer recipient derived from an
// accepted authorization. The credential is always empty; resolution follows
// the authorization to the owner's personal recipient.
func NewSharedRecipient(granteePrincipalID uint, name string, platform PlatformType, sharedAuthorizationID uint) (*Recipient, error) {
	if granteePrincipalID == 0 {
		return nil, fmt.Errorf("grantee principal ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("recipient name is required")
	}
	if sharedAuthorizationID == 0 {
		return nil, fmt.Errorf("shared authorization ID is required")
	}

	sid, err := id.NewRecipientID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate SID: %w", err)
	}

	authID := sharedAuthorizationID
	now := biztime.NowUTC()
	return &Recipient{
		sid:                   sid,
		ownerPrincipalID:      granteePrincipalID,
		name:                  name,
		platformType:          platform,
		credential:            "",
		isPersonal:            false,
		enabled:               true,
		sharedAuthorizationID: &authID,
		createdAt:             now,
		updatedAt:             now,
	}, nil
}

// ReconstructRecipient reconstructs from persistence
func ReconstructRecipient(
	recipientID uint,
	sid string,
	ownerPrincipalID uint,
	name string,
	platformType PlatformType,
	credential string,
	platformConfig string,
	isPersonal bool,
	enabled bool,
	sharedAuthorizationID *uint,
	createdAt, updatedAt time.Time,
) *Recipient {
	return &Recipient{
		id:                    recipientID,
		sid:                   sid,
		ownerPrincipalID:      ownerPrincipalID,
		name:                  name,
		platformType:          platformType,
		credential:            credential,
		platformConfig:        platformConfig,
		isPersonal:            isPersonal,
		enabled:               enabled,
		sharedAuthorizationID: sharedAuthorizationID,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
}

// Getters
func (r *Recipient) ID() uint                     { return r.id }
func (r *Recipient) SID() string                  { return r.sid }
func (r *Recipient) OwnerPrincipalID() uint       { return r.ownerPrincipalID }
func (r *Recipient) Name() string                 { return r.name }
func (r *Recipient) PlatformType() PlatformType   { return r.platformType }
func (r *Recipient) Credential() string           { return r.credential }
func (r *Recipient) PlatformConfig() string       { return r.platformConfig }
func (r *Recipient) IsPersonal() bool             { return r.isPersonal }
func (r *Recipient) Enabled() bool                { return r.enabled }
func (r *Recipient) SharedAuthorizationID() *uint { return r.sharedAuthorizationID }
func (r *Recipient) CreatedAt() time.Time         { return r.createdAt }
func (r *Recipient) UpdatedAt() time.Time         { return r.updatedAt }

// SetID sets the recipient ID (only for persistence layer use)
func (r *Recipient) SetID(recipientID uint) { r.id = recipientID }

// Rename updates the display name.
func (r *Recipient) Rename(name string) error {
	if name == "" {
		return fmt.Errorf("recipient name is required")
	}
	r.name = name
	r.updatedAt = biztime.NowUTC()
	return nil
}

// UpdateCredential replaces the stored secret. Shared recipients never hold
// a credential, so this is rejected for them.
func (r *Recipient) UpdateCredential(credential string) error {
	if !r.isPersonal {
		return ErrSharedRecipientCredential
	}
	if credential == "" {
		return fmt.Errorf("credential cannot be empty")
	}
	r.credential = credential
	r.updatedAt = biztime.NowUTC()
	return nil
}

// Enable marks the recipient usable for task creation.
func (r *Recipient) Enable() {
	r.enabled = true
	r.updatedAt = biztime.NowUTC()
}

// Disable marks the recipient unusable without deleting it.
func (r *Recipient) Disable() {
	r.enabled = false
	r.updatedAt = biztime.NowUTC()
}
