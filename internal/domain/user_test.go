package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLevels(t *testing.T) {
	assert.Equal(t, 5, RoleOwner.Level())
	assert.Equal(t, 4, RoleManager.Level())
	assert.Equal(t, 3, RoleEditor.Level())
	assert.Equal(t, 2, RoleStaff.Level())
	assert.Equal(t, 1, RoleViewer.Level())
	assert.Equal(t, 0, Role("bogus").Level())
}

func TestRoleCan(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleViewer, ActionRead, true},
		{RoleStaff, ActionCreate, false},
		{RoleEditor, ActionCreate, true},
		{RoleEditor, ActionUpdate, true},
		{RoleEditor, ActionDelete, false},
		{RoleManager, ActionDelete, true},
		{RoleManager, ActionManageUsers, false},
		{RoleOwner, ActionManageUsers, true},
		{RoleOwner, Action("bogus"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.role.Can(tt.action), "%s %s", tt.role, tt.action)
	}
}
