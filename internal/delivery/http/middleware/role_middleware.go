package middleware

import (
	"net/http"

	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/pkg/response"
)

// RequireRole checks that the authenticated user holds one of the
// allowed roles. The role comes from the JWT claims via AuthMiddleware.
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin guards admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireFrontDesk guards booking and billing endpoints
func RequireFrontDesk(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleReceptionist)(next)
}

// RequireStaff guards endpoints open to every clinic role
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleReceptionist, entity.RoleDentist)(next)
}
