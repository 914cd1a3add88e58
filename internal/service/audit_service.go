package service

import (
	"context"

	"activity-booking-service/internal/domain/entity"
	"activity-booking-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// Audit actions recorded by the booking flow
const (
	AuditBookingAdmitted      = "booking.admitted"
	AuditBookingStatusChanged = "booking.status_changed"
	AuditActivityCreated      = "activity.created"
	AuditActivityUpdated      = "activity.updated"
	AuditActivityDeleted      = "activity.deleted"
)

// AuditService writes the operational audit trail. Failures are logged and
// swallowed: the trail must never fail the operation it describes.
type AuditService interface {
	Record(ctx context.Context, actor entity.Actor, action string, metadata entity.JSON)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, actor entity.Actor, action string, metadata entity.JSON) {
	entry := &entity.AuditLog{
		ActorRole: string(actor.Role),
		Action:    action,
		Metadata:  metadata,
	}
	if actor.IsAuthenticated() {
		actorID := actor.ID
		entry.ActorID = &actorID
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		s.log.Warnf("Failed to write audit entry %s: %+v", action, err)
	}
}
