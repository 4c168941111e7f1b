package domain

import "time"

// Role is an admin role. Roles form a strict ladder; permission checks
// compare ladder levels.
type Role string

// Admin roles, strongest first.
const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleEditor  Role = "editor"
	RoleStaff   Role = "staff"
	RoleViewer  Role = "viewer"
)

// Level returns the role's position on the permission ladder.
// Unknown roles rank below viewer.
func (r Role) Level() int {
	switch r {
	case RoleOwner:
		return 5
	case RoleManager:
		return 4
	case RoleEditor:
		return 3
	case RoleStaff:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// Action is a permission-checked admin operation.
type Action string

// Actions subject to role checks.
const (
	ActionRead        Action = "read"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionManageUsers Action = "manage_users"
)

// Can reports whether the role may perform the action. Reads are open
// to every authenticated role; writes need editor, deletes manager,
// user management owner.
func (r Role) Can(action Action) bool {
	switch action {
	case ActionRead:
		return true
	case ActionCreate, ActionUpdate:
		return r.Level() >= RoleEditor.Level()
	case ActionDelete:
		return r.Level() >= RoleManager.Level()
	case ActionManageUsers:
		return r.Level() >= RoleOwner.Level()
	default:
		return false
	}
}

// User is an admin account. Storefront visitors are anonymous; users
// exist only for the back office.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Touch updates the UpdatedAt timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now().UTC()
}
