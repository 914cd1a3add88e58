package middleware

import (
	"net/http"

	"activity-booking-service/internal/domain/entity"
	"activity-booking-service/pkg/response"
)

// RequireRole creates a middleware that checks if the actor has any of the
// required roles. The actor is read from context (set by AuthMiddleware).
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Actor information not found")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if actor.Role == role {
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

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireCustomer is a convenience middleware for customer-only endpoints
func RequireCustomer(next http.Handler) http.Handler {
	return RequireRole(entity.RoleCustomer)(next)
}

// RequireStaff is a convenience middleware for provider or admin endpoints
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleProvider, entity.RoleAdmin)(next)
}
