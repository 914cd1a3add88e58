package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"activity-booking-service/internal/converter"
	"activity-booking-service/internal/delivery/dto"
	"activity-booking-service/internal/domain/entity"
	"activity-booking-service/internal/domain/repository"
	"activity-booking-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrActivityNotBookable = errors.New("activity is not accepting bookings")
	ErrInvalidSlot         = errors.New("requested date and time are not in the activity's schedule")
	ErrInvalidParticipants = errors.New("participant count must be at least 1")
	ErrBookingNotFound     = errors.New("booking not found")
)

const slotDateFormat = "2006-01-02"

// SeatReserver is the ledger contract the admission flow depends on.
// Reserve must behave as a single atomic check-and-take per slot instance.
type SeatReserver interface {
	Reserve(ctx context.Context, activityID uuid.UUID, slotDate time.Time, slotTime string, seats, capacity int) error
	Release(ctx context.Context, activityID uuid.UUID, slotDate time.Time, slotTime string, seats int) error
}

type BookingUsecase interface {
	SubmitBooking(ctx context.Context, actor entity.Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	ChangeStatus(ctx context.Context, actor entity.Actor, bookingID uuid.UUID, newStatus entity.BookingStatus) (*dto.BookingResponse, error)
	GetMyBookings(ctx context.Context, actor entity.Actor) (*dto.BookingListResponse, error)
	GetActivityBookings(ctx context.Context, actor entity.Actor, activityID uuid.UUID) (*dto.BookingListResponse, error)
	GetAllBookings(ctx context.Context, actor entity.Actor) (*dto.BookingListResponse, error)
}

type bookingUsecase struct {
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	activityRepo repository.ActivityRepository
	ledger       SeatReserver
	audit        service.AuditService
}

func NewBookingUsecase(
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	activityRepo repository.ActivityRepository,
	ledger SeatReserver,
	audit service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		log:          log,
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		ledger:       ledger,
		audit:        audit,
	}
}

// SubmitBooking validates a booking request, reserves seats through the
// ledger and persists the pending booking.
//
// Flow:
// 1. Participant count sanity check
// 2. Activity exists and is bookable
// 3. Requested date/time is one of the activity's recurring slots
// 4. Actor is an authenticated customer
// 5. Atomic seat reservation in the ledger
// 6. Insert booking to DB; if that fails -> compensate: release the seats
func (u *bookingUsecase) SubmitBooking(ctx context.Context, actor entity.Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if req.Participants < 1 {
		return nil, ErrInvalidParticipants
	}

	activityID, err := uuid.Parse(req.ActivityID)
	if err != nil {
		return nil, ErrActivityNotFound
	}

	activity, err := u.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		u.log.Warnf("Failed to find activity %s: %+v", activityID, err)
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	if !activity.IsBookable() {
		return nil, ErrActivityNotBookable
	}

	slotDate, err := time.Parse(slotDateFormat, req.SlotDate)
	if err != nil {
		return nil, ErrInvalidSlot
	}
	if !activity.HasSlot(slotDate, req.SlotTime) {
		return nil, ErrInvalidSlot
	}

	if err := actor.CanBook(); err != nil {
		return nil, err
	}

	// Critical section: the ledger either takes all requested seats or
	// reports the slot full. No booking record exists until this succeeds.
	if err := u.ledger.Reserve(ctx, activity.ID, slotDate, req.SlotTime, req.Participants, activity.Capacity); err != nil {
		if errors.Is(err, service.ErrCapacityExceeded) {
			return nil, service.ErrCapacityExceeded
		}
		u.log.Warnf("Failed seat reservation for activity %s: %+v", activity.ID, err)
		return nil, err
	}

	booking := &entity.Booking{
		BookingCode:  generateBookingCode(slotDate),
		ActivityID:   activity.ID,
		CustomerID:   actor.ID,
		SlotDate:     slotDate,
		SlotTime:     req.SlotTime,
		Participants: req.Participants,
		Status:       entity.BookingStatusPending,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		ChildAge:     req.ChildAge,
	}

	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		u.log.Errorf("Failed to insert booking to DB, compensating ledger: %+v", err)

		// COMPENSATE - give the seats back since the insert failed
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if releaseErr := u.ledger.Release(releaseCtx, activity.ID, slotDate, req.SlotTime, req.Participants); releaseErr != nil {
			u.log.Errorf("CRITICAL: Failed to release seats after DB failure for activity %s: %+v", activity.ID, releaseErr)
		}

		return nil, err
	}

	u.audit.Record(ctx, actor, service.AuditBookingAdmitted, entity.JSON{
		"booking_id":   booking.ID.String(),
		"activity_id":  activity.ID.String(),
		"slot_date":    req.SlotDate,
		"slot_time":    req.SlotTime,
		"participants": req.Participants,
	})

	u.log.Infof("Booking admitted: id=%s, activity=%s, slot=%s %s, seats=%d",
		booking.ID, activity.ID, req.SlotDate, req.SlotTime, req.Participants)
	return converter.BookingToResponse(booking), nil
}

// ChangeStatus moves a booking through its state machine after checking
// who is asking. Cancelling returns the seats to the ledger.
func (u *bookingUsecase) ChangeStatus(ctx context.Context, actor entity.Actor, bookingID uuid.UUID, newStatus entity.BookingStatus) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	switch newStatus {
	case entity.BookingStatusCancelled:
		if err := actor.CanCancelBooking(booking); err != nil {
			return nil, err
		}
	case entity.BookingStatusConfirmed:
		if err := actor.CanConfirmBooking(); err != nil {
			return nil, err
		}
	default:
		return nil, entity.ErrInvalidTransition
	}

	// A provider only manages bookings on their own activities
	if actor.Role == entity.RoleProvider {
		activity, err := u.activityRepo.FindByID(ctx, booking.ActivityID)
		if err != nil {
			return nil, err
		}
		if activity == nil || !activity.OwnedBy(actor.ID) {
			return nil, entity.ErrWrongRole
		}
	}

	previous := booking.Status
	if err := booking.Transition(newStatus); err != nil {
		return nil, err
	}

	rows, err := u.bookingRepo.UpdateStatus(ctx, bookingID, previous, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update booking %s status: %+v", bookingID, err)
		return nil, err
	}
	if rows == 0 {
		// Someone else moved the booking first; the transition we checked
		// against no longer holds
		return nil, entity.ErrInvalidTransition
	}

	// Cancellation frees the seats immediately and permanently
	if newStatus == entity.BookingStatusCancelled {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.ledger.Release(releaseCtx, booking.ActivityID, booking.SlotDate, booking.SlotTime, booking.Participants); err != nil {
			// Non-fatal: the ledger re-syncs from the DB on next startup
			u.log.Warnf("Failed to release seats for booking %s (non-fatal): %+v", bookingID, err)
		}
	}

	u.audit.Record(ctx, actor, service.AuditBookingStatusChanged, entity.JSON{
		"booking_id": bookingID.String(),
		"from":       string(previous),
		"to":         string(newStatus),
	})

	u.log.Infof("Booking status changed: id=%s, %s -> %s", bookingID, previous, newStatus)
	return converter.BookingToResponse(booking), nil
}

// GetMyBookings returns all bookings made by the acting customer
func (u *bookingUsecase) GetMyBookings(ctx context.Context, actor entity.Actor) (*dto.BookingListResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, entity.ErrUnauthenticated
	}

	bookings, err := u.bookingRepo.FindByCustomerID(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for customer %s: %+v", actor.ID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// GetActivityBookings returns all bookings against one activity. Providers
// see their own activities; admins see any.
func (u *bookingUsecase) GetActivityBookings(ctx context.Context, actor entity.Actor, activityID uuid.UUID) (*dto.BookingListResponse, error) {
	activity, err := u.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	if err := actor.CanManageActivity(activity); err != nil {
		return nil, err
	}

	bookings, err := u.bookingRepo.FindByActivityID(ctx, activityID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for activity %s: %+v", activityID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// GetAllBookings returns every booking in the system (admin)
func (u *bookingUsecase) GetAllBookings(ctx context.Context, actor entity.Actor) (*dto.BookingListResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, entity.ErrUnauthenticated
	}
	if actor.Role != entity.RoleAdmin {
		return nil, entity.ErrWrongRole
	}

	bookings, err := u.bookingRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// generateBookingCode generates a unique booking code: BK-YYYYMMDD-XXXXXX
func generateBookingCode(slotDate time.Time) string {
	dateStr := slotDate.Format("20060102")
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	randomStr := fmt.Sprintf("%06X", randomBytes)
	return fmt.Sprintf("BK-%s-%s", dateStr, randomStr)
}
