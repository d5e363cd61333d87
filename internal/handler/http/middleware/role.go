package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/salescope/salestracker-backend-go/internal/domain/user"
	"github.com/salescope/salestracker-backend-go/internal/handler/http/response"
)

// MinRole admits requests whose token role sits at or above min on the
// ladder viewer < user < manager < admin.
func MinRole(min user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient role: required '%s'", min))
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient role: required '%s'", min))
				return
			}

			if !user.Role(roleStr).AtLeast(min) {
				response.Forbidden(w, fmt.Sprintf("Insufficient role: required '%s', but user role is '%s'", min, roleStr))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly guards the user management surface.
func AdminOnly(next http.Handler) http.Handler {
	return MinRole(user.RoleAdmin)(next)
}
