package user

import "context"

// UserService is the admin-only account management surface. callerID
// is the admin making the request; the self-delete and last-admin
// guards check against it.
type UserService interface {
	GetUser(ctx context.Context, id string) (UserResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	DeleteUser(ctx context.Context, callerID, id string) error
	ListUsers(ctx context.Context) ([]UserResponse, error)
}
