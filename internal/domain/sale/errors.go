package sale

import "errors"

var (
	ErrSaleNotFound = errors.New("sale record not found")

	// Caller-input errors. These are recoverable and reported per field
	// on manual entry and per row on bulk import.
	ErrUnknownEmployee = errors.New("employee name does not match an active employee")
	ErrInvalidDate     = errors.New("date does not parse as a calendar date")
	ErrInvalidAmount   = errors.New("amount must be a non-negative decimal")
	ErrInvalidCount    = errors.New("deal count must be a non-negative integer")
	ErrInvalidPeriod   = errors.New("period type must be one of: week, month, quarter, year")
)
