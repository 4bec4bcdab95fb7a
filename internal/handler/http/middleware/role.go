package middleware

import (
	"net/http"

	"github.com/gestionale-hr/gestionale-backend-go/internal/domain/user"
	"github.com/gestionale-hr/gestionale-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromContext(r)
		if err != nil || role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager requires the manager or admin role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := roleFromContext(r)
		if err != nil || (role != user.RoleManager && role != user.RoleAdmin) {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func roleFromContext(r *http.Request) (user.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}

	roleStr, _ := claims["role"].(string)
	return user.Role(roleStr), nil
}
