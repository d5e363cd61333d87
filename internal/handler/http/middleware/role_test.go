package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salestracker-backend-go/internal/domain/user"
	"github.com/salescope/salestracker-backend-go/internal/pkg/jwt"
)

func newGuardedRouter(t *testing.T) (*chi.Mux, jwt.Service) {
	t.Helper()

	jwtSvc := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")

	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtSvc.JWTAuth()))
		r.Use(AuthRequired(jwtSvc.JWTAuth()))

		r.Get("/any", ok)
		r.With(MinRole(user.RoleUser)).Get("/entry", ok)
		r.With(MinRole(user.RoleManager)).Get("/managed", ok)
		r.With(AdminOnly).Get("/admin", ok)
	})
	return r, jwtSvc
}

func doGet(t *testing.T, router *chi.Mux, path, token string) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func accessToken(t *testing.T, jwtSvc jwt.Service, role user.Role) string {
	t.Helper()

	token, _, err := jwtSvc.GenerateAccessToken("6c0f3f3e-0000-0000-0000-000000000001", "someone", role)
	require.NoError(t, err)
	return token
}

func TestAuthRequired_MissingToken(t *testing.T) {
	router, _ := newGuardedRouter(t)

	assert.Equal(t, http.StatusUnauthorized, doGet(t, router, "/any", ""))
}

func TestAuthRequired_RefreshTokenRejected(t *testing.T) {
	router, jwtSvc := newGuardedRouter(t)

	// A refresh token carries type=refresh and must not open data routes.
	refresh, _, err := jwtSvc.GenerateRefreshToken("6c0f3f3e-0000-0000-0000-000000000001")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doGet(t, router, "/any", refresh))
}

func TestAuthRequired_AccessTokenAccepted(t *testing.T) {
	router, jwtSvc := newGuardedRouter(t)

	token := accessToken(t, jwtSvc, user.RoleViewer)
	assert.Equal(t, http.StatusOK, doGet(t, router, "/any", token))
}

func TestMinRole_Ladder(t *testing.T) {
	router, jwtSvc := newGuardedRouter(t)

	cases := []struct {
		role user.Role
		path string
		want int
	}{
		{user.RoleViewer, "/entry", http.StatusForbidden},
		{user.RoleUser, "/entry", http.StatusOK},
		{user.RoleUser, "/managed", http.StatusForbidden},
		{user.RoleManager, "/managed", http.StatusOK},
		{user.RoleAdmin, "/managed", http.StatusOK},
		{user.RoleManager, "/admin", http.StatusForbidden},
		{user.RoleAdmin, "/admin", http.StatusOK},
	}

	for _, tc := range cases {
		token := accessToken(t, jwtSvc, tc.role)
		assert.Equal(t, tc.want, doGet(t, router, tc.path, token), "role %s on %s", tc.role, tc.path)
	}
}

func TestMinRole_UnknownRoleClaim(t *testing.T) {
	router, jwtSvc := newGuardedRouter(t)

	token := accessToken(t, jwtSvc, user.Role("superuser"))
	assert.Equal(t, http.StatusForbidden, doGet(t, router, "/entry", token))
}
