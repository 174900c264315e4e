package models

import "time"

// User is the DB representation of an application user profile.
type User struct {
	UserID   string `db:"user_id"`
	Username string `db:"username"`
	RoleName string `db:"role_name"` // Joined from roles
	IsActive bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
