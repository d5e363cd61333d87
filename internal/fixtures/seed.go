// Package fixtures seeds the data the tracker cannot start without.
package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/salescope/salestracker-backend-go/internal/config"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
)

// EnsureAdmin guarantees one active admin account exists. On a fresh
// database it creates the configured bootstrap admin; once any active
// admin exists it does nothing, so rotating ADMIN_PASSWORD later has
// no effect on a live install. If the configured username is taken by
// a demoted or deactivated account, that account is promoted back,
// which is the recovery path when every admin has been locked out.
func EnsureAdmin(ctx context.Context, db *database.DB, cfg config.AdminConfig, logger *slog.Logger) error {
	var active int
	if err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE role = 'admin' AND is_active = TRUE
	`).Scan(&active); err != nil {
		return fmt.Errorf("failed to count active admins: %w", err)
	}
	if active > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, role, is_active)
		VALUES ($1, $2, $3, 'admin', TRUE)
		ON CONFLICT ((LOWER(username))) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    role = 'admin',
		    is_active = TRUE,
		    updated_at = NOW()
	`, uuid.NewString(), cfg.Username, string(hash))
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logger.Info("bootstrap admin seeded", "username", cfg.Username)
	return nil
}
