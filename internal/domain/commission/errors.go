package commission

import "errors"

var (
	ErrInvalidAmount = errors.New("monetary amount must not be negative")
	ErrInvalidRate   = errors.New("commission rate must be between 0 and 1")
)
