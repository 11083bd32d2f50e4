package recipient

import "fmt"

// PlatformType identifies the task platform a recipient points at. It is a
// closed enumeration; adding a platform means adding a constant here and an
// adapter in the platform registry.
type PlatformType string

const (
	PlatformTodoist        PlatformType = "todoist"
	PlatformTrello         PlatformType = "trello"
	PlatformGoogleCalendar PlatformType = "google_calendar"
	PlatformNotion         PlatformType = "notion"
)

// AllPlatformTypes lists every supported platform.
func AllPlatformTypes() []PlatformType {
	return []PlatformType{PlatformTodoist, PlatformTrello, PlatformGoogleCalendar, PlatformNotion}
}

// ParsePlatformType validates a raw platform string.
func ParsePlatformType(s string) (PlatformType, error) {
	switch PlatformType(s) {
	case PlatformTodoist, PlatformTrello, PlatformGoogleCalendar, PlatformNotion:
		return PlatformType(s), nil
	default:
		return "", fmt.Errorf("unknown platform type: %q", s)
	}
}

// String returns the wire representation.
func (p PlatformType) String() string { return string(p) }

// UsesOAuth reports whether credentials for this platform are OAuth tokens
// subject to expiry and refresh, as opposed to static API keys.
func (p PlatformType) UsesOAuth() bool {
	switch p {
	case PlatformTodoist, PlatformGoogleCalendar:
		return true
	default:
		return false
	}
}
