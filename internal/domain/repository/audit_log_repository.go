package repository

import (
	"context"

	"activity-booking-service/internal/domain/entity"
)

// AuditLogRepository defines the persistence contract for audit entries
type AuditLogRepository interface {
	// Create persists a new audit entry
	Create(ctx context.Context, log *entity.AuditLog) error
}
