package sharing

import "fmt"

// PermissionLevel is the capability granted to a delegate.
type PermissionLevel string

const (
	// PermissionUse allows creating and updating tasks through the shared
	// recipient.
	PermissionUse PermissionLevel = "use"
	// PermissionAdmin additionally allows deleting tasks, editing the
	// recipient and re-sharing it.
	PermissionAdmin PermissionLevel = "admin"
)

// Action is an operation attempted through a shared recipient.
type Action string

const (
	ActionCreateTask    Action = "create_task"
	ActionUpdateTask    Action = "update_task"
	ActionDeleteTask    Action = "delete_task"
	ActionEditRecipient Action = "edit_recipient"
	ActionReshare       Action = "reshare"
)

// ParsePermissionLevel validates a raw permission string.
func ParsePermissionLevel(s string) (PermissionLevel, error) {
	switch PermissionLevel(s) {
	case PermissionUse, PermissionAdmin:
		return PermissionLevel(s), nil
	default:
		return "", fmt.Errorf("unknown permission level: %q", s)
	}
}

// String returns the wire representation.
func (p PermissionLevel) String() string { return string(p) }

// Allows is the single permission check used everywhere an action on a
// shared recipient is attempted. It is a pure function of (level, action);
// presentation layers must not re-implement it.
func (p PermissionLevel) Allows(action Action) bool {
	switch p {
	case PermissionUse:
		return action == ActionCreateTask || action == ActionUpdateTask
	case PermissionAdmin:
		switch action {
		case ActionCreateTask, ActionUpdateTask, ActionDeleteTask, ActionEditRecipient, ActionReshare:
			return true
		}
	}
	return false
}
