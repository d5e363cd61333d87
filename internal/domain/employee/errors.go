package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrNameExists              = errors.New("an employee with this name already exists")
	ErrInvalidCommissionRate   = errors.New("commission rate must be between 0 and 1")
	ErrInvalidDrawAmount       = errors.New("draw amount must not be negative")
	ErrEmployeeAlreadyActive   = errors.New("employee is already active")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
)
