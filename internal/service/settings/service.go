package settings

import (
	"context"

	"github.com/salescope/salestracker-backend-go/internal/domain/period"
	"github.com/salescope/salestracker-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// GetSettings implements settings.SettingsService.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (settings.SettingsResponse, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.NewSettingsResponse(current), nil
}

// UpdateSettings implements settings.SettingsService. Omitted fields
// keep their stored values.
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	if req.DefaultPeriod != nil {
		current.DefaultPeriod = period.Type(*req.DefaultPeriod)
	}
	if req.ColorScheme != nil {
		current.ColorScheme = *req.ColorScheme
	}
	if req.ShowCommission != nil {
		current.ShowCommission = *req.ShowCommission
	}
	if req.ShowDraws != nil {
		current.ShowDraws = *req.ShowDraws
	}

	updated, err := s.settingsRepo.Update(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	return settings.NewSettingsResponse(updated), nil
}
