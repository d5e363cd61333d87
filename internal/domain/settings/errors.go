package settings

import "errors"

var (
	ErrSettingsNotFound   = errors.New("settings row not found")
	ErrInvalidColorScheme = errors.New("color scheme is not one of the shipped themes")
	ErrInvalidPeriodType  = errors.New("default period must be one of: ytd, week, month, quarter, year")
)
