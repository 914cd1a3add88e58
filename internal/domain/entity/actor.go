package entity

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated is returned when no valid actor identity is present
	ErrUnauthenticated = errors.New("actor is not authenticated")
	// ErrWrongRole is returned when an authenticated actor's role does not
	// permit the attempted operation
	ErrWrongRole = errors.New("actor role does not permit this operation")
)

// Actor is an authenticated identity attempting an operation. The zero
// value is an anonymous actor. Authentication itself happens outside the
// core; the actor arrives here already verified.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

// Anonymous returns an unauthenticated actor
func Anonymous() Actor {
	return Actor{Role: RoleAnonymous}
}

// IsAuthenticated reports whether the actor carries a verified identity
func (a Actor) IsAuthenticated() bool {
	return a.ID != uuid.Nil && a.Role != RoleAnonymous && a.Role != ""
}

// CanBook decides whether the actor may create bookings. Only customers
// book; providers and admins manage supply, not demand.
func (a Actor) CanBook() error {
	if !a.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if a.Role != RoleCustomer {
		return ErrWrongRole
	}
	return nil
}

// CanCancelBooking decides whether the actor may cancel the given booking:
// the owning customer, a provider, or an admin.
func (a Actor) CanCancelBooking(b *Booking) error {
	if !a.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if a.Role.IsStaff() {
		return nil
	}
	if a.Role == RoleCustomer && b.CustomerID == a.ID {
		return nil
	}
	return ErrWrongRole
}

// CanConfirmBooking decides whether the actor may confirm bookings.
// Confirmation is a supply-side action.
func (a Actor) CanConfirmBooking() error {
	if !a.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if !a.Role.IsStaff() {
		return ErrWrongRole
	}
	return nil
}

// CanManageActivity decides whether the actor may create or modify the
// given activity. Providers manage their own activities; admins manage all.
func (a Actor) CanManageActivity(activity *Activity) error {
	if !a.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if a.Role == RoleAdmin {
		return nil
	}
	if a.Role == RoleProvider && activity.OwnedBy(a.ID) {
		return nil
	}
	return ErrWrongRole
}
