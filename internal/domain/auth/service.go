package auth

import (
	"context"

	"github.com/salescope/salestracker-backend-go/internal/domain/user"
)

type AuthService interface {
	// Login verifies username and password and mints an access/refresh
	// pair. The refresh token is persisted for later revocation.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// RefreshToken exchanges a live refresh token for a new access
	// token. Revoked or expired tokens are rejected.
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// Logout revokes every persisted refresh token of the user.
	Logout(ctx context.Context, userID string) error

	// Me returns the account behind the request token.
	Me(ctx context.Context, userID string) (user.UserResponse, error)

	// ChangePassword re-verifies the current password before setting a
	// new one and revokes outstanding refresh tokens.
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error

	// LoginWithGoogle signs in an existing account matched by verified
	// email. Unknown emails are rejected, never auto-provisioned.
	LoginWithGoogle(ctx context.Context, email string) (LoginResponse, error)
}
