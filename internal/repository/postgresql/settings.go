package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/salescope/salestracker-backend-go/internal/domain/settings"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository. The settings table holds
// exactly one row, seeded by the initial migration.
func (s *settingsRepositoryImpl) Get(ctx context.Context) (settings.Settings, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT default_period, color_scheme, show_commission, show_draws, updated_at
		FROM settings
		WHERE id = 1
	`

	var cfg settings.Settings
	err := q.QueryRow(ctx, query).Scan(
		&cfg.DefaultPeriod, &cfg.ColorScheme, &cfg.ShowCommission, &cfg.ShowDraws, &cfg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return cfg, nil
}

// Update implements settings.SettingsRepository.
func (s *settingsRepositoryImpl) Update(ctx context.Context, cfg settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE settings
		SET default_period = $1, color_scheme = $2, show_commission = $3, show_draws = $4, updated_at = NOW()
		WHERE id = 1
		RETURNING default_period, color_scheme, show_commission, show_draws, updated_at
	`

	var updated settings.Settings
	err := q.QueryRow(ctx, query,
		cfg.DefaultPeriod, cfg.ColorScheme, cfg.ShowCommission, cfg.ShowDraws,
	).Scan(
		&updated.DefaultPeriod, &updated.ColorScheme, &updated.ShowCommission, &updated.ShowDraws, &updated.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return updated, nil
}
