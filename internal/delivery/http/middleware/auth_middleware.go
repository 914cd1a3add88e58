package middleware

import (
	"context"
	"net/http"
	"strings"

	"activity-booking-service/internal/domain/entity"
	"activity-booking-service/pkg/jwt"
	"activity-booking-service/pkg/response"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware resolves the acting identity from a bearer token. Token
// minting and account management live in the platform's auth service; this
// middleware only verifies the signature and unpacks the claims.
type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate rejects requests without a valid bearer token
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := m.resolveActor(r)
		if !ok {
			response.Unauthorized(w, "Invalid or missing bearer token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

// OptionalAuthenticate resolves the actor when a valid token is present
// and passes an anonymous actor otherwise, letting the domain decide
// whether anonymity is acceptable.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := m.resolveActor(r)
		if !ok {
			actor = entity.Anonymous()
		}

		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
	})
}

func (m *AuthMiddleware) resolveActor(r *http.Request) (entity.Actor, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return entity.Actor{}, false
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return entity.Actor{}, false
	}

	claims, err := m.jwtService.ValidateToken(parts[1])
	if err != nil {
		return entity.Actor{}, false
	}

	role := entity.Role(claims.Role)
	if !role.IsValid() {
		return entity.Actor{}, false
	}

	return entity.Actor{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  role,
	}, true
}

func withActor(ctx context.Context, actor entity.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActorFromContext extracts the acting identity from the request
// context. The second return is false when no auth middleware ran.
func GetActorFromContext(ctx context.Context) (entity.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(entity.Actor)
	return actor, ok
}
