package user

import "time"

type Role string

const (
	RoleViewer  Role = "viewer"  // Read-only dashboards
	RoleUser    Role = "user"    // Can record sales and run imports
	RoleManager Role = "manager" // Can manage employees and goals
	RoleAdmin   Role = "admin"   // Full access including users and settings
)

type User struct {
	ID           string
	Username     string
	Email        *string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageEmployees checks if user can create or edit employees
func (u *User) CanManageEmployees() bool {
	return u.Role.AtLeast(RoleManager)
}

// CanRecordSales checks if user can enter or import sale records
func (u *User) CanRecordSales() bool {
	return u.Role.AtLeast(RoleUser)
}
