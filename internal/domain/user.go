package domain

import "time"

// Role distinguishes the two mutually exclusive account types.
type Role string

const (
	// RoleWarga is a village resident who files and views their own reports.
	RoleWarga Role = "warga"
	// RoleAdmin may view all reports, change statuses, and list users.
	RoleAdmin Role = "admin"
)

// User is the domain model for accounts. Role is fixed at creation; there is
// no role-change operation.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsWarga reports whether the user holds the resident role.
func (u *User) IsWarga() bool {
	return u != nil && u.Role == RoleWarga
}
