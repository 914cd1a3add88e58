package repository

import (
	"context"
	"time"

	"activity-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

// SlotUsage is one row of the per-slot occupancy aggregate used to rebuild
// the seat ledger from the durable store.
type SlotUsage struct {
	ActivityID uuid.UUID
	SlotDate   time.Time
	SlotTime   string
	Seats      int
	Capacity   int
}

// BookingRepository defines the persistence contract for bookings
type BookingRepository interface {
	// Create persists a new booking
	Create(ctx context.Context, booking *entity.Booking) error

	// FindByID retrieves a booking by its unique identifier, nil if absent
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// FindByCustomerID retrieves all bookings made by a customer,
	// newest first
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]entity.Booking, error)

	// FindByActivityID retrieves all bookings against an activity,
	// newest first
	FindByActivityID(ctx context.Context, activityID uuid.UUID) ([]entity.Booking, error)

	// FindAll retrieves every booking, newest first
	FindAll(ctx context.Context) ([]entity.Booking, error)

	// SlotOccupancy sums participants over non-cancelled bookings for one
	// (activity, date, time) slot instance
	SlotOccupancy(ctx context.Context, activityID uuid.UUID, slotDate time.Time, slotTime string) (int, error)

	// SlotUsages returns the per-slot occupancy aggregate for slots on or
	// after the given date, paged for batch processing
	SlotUsages(ctx context.Context, from time.Time, limit, offset int) ([]SlotUsage, error)

	// UpdateStatus atomically moves a booking from one status to another.
	// Returns affected rows: 0 means the booking was not in the expected
	// status (or does not exist), so the caller's transition lost a race.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (int64, error)
}
