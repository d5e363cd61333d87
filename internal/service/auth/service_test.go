package auth

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/salescope/salestracker-backend-go/internal/domain/auth"
	"github.com/salescope/salestracker-backend-go/internal/domain/user"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
	"github.com/salescope/salestracker-backend-go/internal/pkg/jwt"
	"github.com/salescope/salestracker-backend-go/internal/repository/postgresql"
)

var testDB *database.DB

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

// serviceTestDB connects and migrates once per run. Tests are skipped
// entirely when TEST_DATABASE_URL is not set.
func serviceTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if testDB == nil {
		db, err := database.NewPostgreSQLDB(dsn)
		require.NoError(t, err)

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		require.NoError(t, database.Migrate(context.Background(), db, logger))
		testDB = db
	}
	return testDB
}

func resetAuthTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	_, err := db.Exec(ctx, "TRUNCATE TABLE refresh_tokens, users CASCADE")
	require.NoError(t, err)
}

func seedAuthUser(t *testing.T, ctx context.Context, db *database.DB, username, password string, role user.Role, active bool) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	var id string
	err = db.QueryRow(ctx, `
		INSERT INTO users (id, username, password_hash, role, is_active)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id
	`, username, string(hash), string(role), active).Scan(&id)
	require.NoError(t, err)
	return id
}

func setAuthUserEmail(t *testing.T, ctx context.Context, db *database.DB, id, email string) {
	t.Helper()
	_, err := db.Exec(ctx, "UPDATE users SET email = $1 WHERE id = $2", email, id)
	require.NoError(t, err)
}

func newTestAuthService(db *database.DB) auth.AuthService {
	userRepo := postgresql.NewUserRepository(db)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	jwtRepo := postgresql.NewJWTRepository(db)
	return NewAuthService(db, userRepo, jwtService, jwtRepo)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	seedAuthUser(t, ctx, db, "dana", "password123", user.RoleManager, true)
	svc := newTestAuthService(db)

	resp, err := svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
	assert.Greater(t, resp.RefreshTokenExpiresIn, int64(0))
	assert.Equal(t, "dana", resp.User.Username)
	assert.Equal(t, "manager", resp.User.Role)

	// The refresh token is persisted hashed, never verbatim.
	var count int
	err = db.QueryRow(ctx, "SELECT COUNT(*) FROM refresh_tokens WHERE token_hash = $1", resp.RefreshToken).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
	err = db.QueryRow(ctx, "SELECT COUNT(*) FROM refresh_tokens").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAuthService_Login_CaseInsensitiveUsername(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	seedAuthUser(t, ctx, db, "Dana", "password123", user.RoleUser, true)
	svc := newTestAuthService(db)

	resp, err := svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "Dana", resp.User.Username)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	seedAuthUser(t, ctx, db, "dana", "password123", user.RoleUser, true)
	svc := newTestAuthService(db)

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "wrongpassword"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	svc := newTestAuthService(db)

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "password123"})

	// Unknown user and wrong password are indistinguishable to the
	// caller.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	seedAuthUser(t, ctx, db, "dana", "password123", user.RoleUser, false)
	svc := newTestAuthService(db)

	_, err := svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})

	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	seedAuthUser(t, ctx, db, "dana", "password123", user.RoleUser, true)
	svc := newTestAuthService(db)

	login, err := svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})
	require.NoError(t, err)

	resp, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	svc := newTestAuthService(db)

	_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "not-a-jwt"})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	seedAuthUser(t, ctx, db, "dana", "password123", user.RoleUser, true)
	svc := newTestAuthService(db)

	login, err := svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_RefreshToken_AfterLogout(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	userID := seedAuthUser(t, ctx, db, "dana", "password123", user.RoleUser, true)
	svc := newTestAuthService(db)

	login, err := svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, userID))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})

	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RefreshToken_DisabledAccount(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	userID := seedAuthUser(t, ctx, db, "dana", "password123", user.RoleUser, true)
	svc := newTestAuthService(db)

	login, err := svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})
	require.NoError(t, err)

	_, err = db.Exec(ctx, "UPDATE users SET is_active = FALSE WHERE id = $1", userID)
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})

	assert.ErrorIs(t, err, auth.ErrAccountDisabled)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	userID := seedAuthUser(t, ctx, db, "dana", "password123", user.RoleAdmin, true)
	setAuthUserEmail(t, ctx, db, userID, "dana@example.com")
	svc := newTestAuthService(db)

	resp, err := svc.LoginWithGoogle(ctx, "Dana@Example.com")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "dana", resp.User.Username)
}

func TestAuthService_LoginWithGoogle_UnlinkedEmail(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	svc := newTestAuthService(db)

	// OAuth never provisions accounts, so an unknown email is refused
	// and no user row appears.
	_, err := svc.LoginWithGoogle(ctx, "stranger@example.com")

	assert.ErrorIs(t, err, auth.ErrOAuthNotLinked)

	var count int
	require.NoError(t, db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count))
	assert.Zero(t, count)
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	userID := seedAuthUser(t, ctx, db, "dana", "password123", user.RoleViewer, true)
	svc := newTestAuthService(db)

	resp, err := svc.Me(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, resp.ID)
	assert.Equal(t, "dana", resp.Username)
	assert.Equal(t, "viewer", resp.Role)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	userID := seedAuthUser(t, ctx, db, "dana", "password123", user.RoleUser, true)
	svc := newTestAuthService(db)

	login, err := svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, userID, auth.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "betterpassword",
	})
	require.NoError(t, err)

	// The old password is gone and so are the old sessions.
	_, err = svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "betterpassword"})
	assert.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	ctx := context.Background()
	db := serviceTestDB(t)
	resetAuthTables(t, ctx, db)

	userID := seedAuthUser(t, ctx, db, "dana", "password123", user.RoleUser, true)
	svc := newTestAuthService(db)

	err := svc.ChangePassword(ctx, userID, auth.ChangePasswordRequest{
		CurrentPassword: "wrongpassword",
		NewPassword:     "betterpassword",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// The stored hash is untouched.
	_, err = svc.Login(ctx, auth.LoginRequest{Username: "dana", Password: "password123"})
	assert.NoError(t, err)
}
