package user

import "time"

type Role string

const (
	RoleAdmin Role = "ADMIN" // Full access, approves leave and runs payroll
	RoleUser  Role = "USER"  // Regular account
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole reports whether r is a known role.
func IsValidRole(r string) bool {
	return r == string(RoleAdmin) || r == string(RoleUser)
}
