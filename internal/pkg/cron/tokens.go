package cron

import (
	"context"
	"log/slog"
	"time"
)

// TokenStore is the slice of the token repository the cleanup job
// needs.
type TokenStore interface {
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}

// TokenJobs prunes refresh tokens that can never be used again:
// expired ones and those revoked on logout or password change.
type TokenJobs struct {
	store  TokenStore
	logger *slog.Logger
}

func NewTokenJobs(store TokenStore, logger *slog.Logger) *TokenJobs {
	return &TokenJobs{store: store, logger: logger}
}

// RegisterJobs registers the token cleanup on the scheduler.
func (j *TokenJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(
		"cleanup_refresh_tokens",
		24*time.Hour,
		j.CleanupRefreshTokens,
	)
}

// CleanupRefreshTokens deletes dead refresh tokens and logs how many
// went away.
func (j *TokenJobs) CleanupRefreshTokens(ctx context.Context) error {
	deleted, err := j.store.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		return err
	}
	if deleted > 0 {
		j.logger.Info("pruned refresh tokens", "deleted", deleted)
	}
	return nil
}
