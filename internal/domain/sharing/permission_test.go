package sharing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionLevel_Allows(t *testing.T) {
	tests := []struct {
		name   string
		level  PermissionLevel
		action Action
		want   bool
	}{
		{"use allows create", PermissionUse, ActionCreateTask, true},
		{"use allows update", PermissionUse, ActionUpdateTask, true},
		{"use denies delete", PermissionUse, ActionDeleteTask, false},
		{"use denies edit", PermissionUse, ActionEditRecipient, false},
		{"use denies reshare", PermissionUse, ActionReshare, false},
		{"admin allows create", PermissionAdmin, ActionCreateTask, true},
		{"admin allows update", PermissionAdmin, ActionUpdateTask, true},
		{"admin allows delete", PermissionAdmin, ActionDeleteTask, true},
		{"admin allows edit", PermissionAdmin, ActionEditRecipient, true},
		{"admin allows reshare", PermissionAdmin, ActionReshare, true},
		{"unknown level denies everything", PermissionLevel("owner"), ActionCreateTask, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.Allows(tt.action))
		})
	}
}

func TestParsePermissionLevel(t *testing.T) {
	got, err := ParsePermissionLevel("admin")
	assert.NoError(t, err)
	assert.Equal(t, PermissionAdmin, got)

	_, err = ParsePermissionLevel("root")
	assert.Error(t, err)
}
