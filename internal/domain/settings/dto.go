package settings

import (
	"time"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	DefaultPeriod  *string `json:"default_period,omitempty"`
	ColorScheme    *string `json:"color_scheme,omitempty"`
	ShowCommission *bool   `json:"show_commission,omitempty"`
	ShowDraws      *bool   `json:"show_draws,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DefaultPeriod != nil {
		t := period.Type(*r.DefaultPeriod)
		// Custom needs explicit dates, so it cannot be a default.
		if !t.Valid() || t == period.TypeCustom {
			errs = append(errs, validator.ValidationError{Field: "default_period", Message: "default_period must be one of: ytd, week, month, quarter, year"})
		}
	}

	if r.ColorScheme != nil && !validator.IsInSlice(*r.ColorScheme, ValidColorSchemes) {
		errs = append(errs, validator.ValidationError{Field: "color_scheme", Message: "color_scheme is not one of the shipped themes"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	DefaultPeriod  string `json:"default_period"`
	ColorScheme    string `json:"color_scheme"`
	ShowCommission bool   `json:"show_commission"`
	ShowDraws      bool   `json:"show_draws"`
	UpdatedAt      string `json:"updated_at"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		DefaultPeriod:  string(s.DefaultPeriod),
		ColorScheme:    s.ColorScheme,
		ShowCommission: s.ShowCommission,
		ShowDraws:      s.ShowDraws,
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}
