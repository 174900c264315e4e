package domain

import "time"

// RoleName identifies a user capability level.
type RoleName string

const (
	RoleAdministrator RoleName = "Administrator"
	RoleManager       RoleName = "Manager"
	RoleAccountant    RoleName = "Accountant"
)

// ApproverRoles are the roles allowed to approve or reject journal entries.
var ApproverRoles = []RoleName{RoleManager, RoleAdministrator}

// User represents an application user as seen by the ledger core. The core
// never authenticates; it only consumes the identifier and role.
type User struct {
	UserID   string   `json:"userID"` // Primary key (UUID)
	Username string   `json:"username"`
	Role     RoleName `json:"role"`
	IsActive bool     `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}

// HasRole reports whether the user holds any of the given roles.
func (u User) HasRole(roles ...RoleName) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
