package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTransition is returned when a status change violates the
// booking state machine
var ErrInvalidTransition = errors.New("invalid booking status transition")

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid checks whether the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving from s
// to target. Legal moves: pending→confirmed, pending→cancelled,
// confirmed→cancelled. Cancelled is terminal.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return target == BookingStatusConfirmed || target == BookingStatusCancelled
	case BookingStatusConfirmed:
		return target == BookingStatusCancelled
	}
	return false
}

// Booking represents a customer's reservation of seats in one concrete
// slot instance of an activity
type Booking struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingCode  string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"booking_code"`
	ActivityID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_slot" json:"activity_id"`
	CustomerID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"customer_id"`
	SlotDate     time.Time     `gorm:"type:date;not null;index:idx_bookings_slot" json:"slot_date"`
	SlotTime     string        `gorm:"type:varchar(5);not null;index:idx_bookings_slot" json:"slot_time"`
	Participants int           `gorm:"not null" json:"participants"`
	Status       BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Contact details are passed through unchanged; the core never
	// interprets them
	ContactName  string `gorm:"type:varchar(255)" json:"contact_name"`
	ContactEmail string `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone string `gorm:"type:varchar(50)" json:"contact_phone"`
	ChildAge     string `gorm:"type:varchar(20)" json:"child_age"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Activity Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks if the booking is in pending status
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsConfirmed checks if the booking is confirmed
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsCancelled checks if the booking is cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// CountsTowardOccupancy reports whether the booking's seats consume
// capacity. Cancelled bookings free their seats permanently.
func (b *Booking) CountsTowardOccupancy() bool {
	return b.Status != BookingStatusCancelled
}

// Transition moves the booking to target, enforcing the state machine.
// Returns ErrInvalidTransition for any illegal move.
func (b *Booking) Transition(target BookingStatus) error {
	if !b.Status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	b.Status = target
	return nil
}
