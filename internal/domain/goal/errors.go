package goal

import "errors"

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidRange    = errors.New("period_end must not be before period_start")
	ErrNoTarget        = errors.New("goal needs a revenue or deals target")
	ErrEmployeeMissing = errors.New("goal employee not found")
)
