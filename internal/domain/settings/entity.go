package settings

import (
	"time"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
)

// Settings is the single dashboard configuration row. It travels as an
// explicit record through services and responses; nothing reads it
// from process-wide state.
type Settings struct {
	DefaultPeriod  period.Type
	ColorScheme    string
	ShowCommission bool
	ShowDraws      bool
	UpdatedAt      time.Time
}

// ValidColorSchemes lists every theme the dashboard ships with.
var ValidColorSchemes = []string{
	"default",
	"dark",
	"green",
	"purple",
	"orange",
	"teal",
	"red",
	"pink",
}
