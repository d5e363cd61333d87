package period

import "errors"

var (
	ErrInvalidPeriodType = errors.New("period type must be one of: ytd, week, month, quarter, year, custom")
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidYear       = errors.New("year must be a four digit number")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidQuarter    = errors.New("quarter must be between 1 and 4")
	ErrInvalidRange      = errors.New("custom period requires start and end dates with start not after end")
)
