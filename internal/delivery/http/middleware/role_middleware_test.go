package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"activity-booking-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func serveWithActor(t *testing.T, handler http.Handler, actor *entity.Actor) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if actor != nil {
		req = req.WithContext(withActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		role       entity.Role
		wantStatus int
	}{
		{"admin passes admin gate", RequireAdmin, entity.RoleAdmin, http.StatusOK},
		{"customer fails admin gate", RequireAdmin, entity.RoleCustomer, http.StatusForbidden},
		{"provider passes staff gate", RequireStaff, entity.RoleProvider, http.StatusOK},
		{"admin passes staff gate", RequireStaff, entity.RoleAdmin, http.StatusOK},
		{"customer fails staff gate", RequireStaff, entity.RoleCustomer, http.StatusForbidden},
		{"customer passes customer gate", RequireCustomer, entity.RoleCustomer, http.StatusOK},
		{"provider fails customer gate", RequireCustomer, entity.RoleProvider, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := entity.Actor{ID: uuid.New(), Role: tt.role}
			rec := serveWithActor(t, tt.middleware(okHandler()), &actor)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRole_NoActorInContext(t *testing.T) {
	rec := serveWithActor(t, RequireAdmin(okHandler()), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
