package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameExists        = errors.New("username already taken")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidRole           = errors.New("role must be one of: viewer, user, manager, admin")
	ErrInvalidPasswordLength = errors.New("password must be at least 8 characters")
	ErrCannotDeleteSelf      = errors.New("cannot delete your own account")
	ErrLastAdmin             = errors.New("cannot remove or demote the last active admin")
)
