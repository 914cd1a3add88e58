package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	ActivityID   string `json:"activity_id" validate:"required,uuid"`
	SlotDate     string `json:"slot_date" validate:"required"`
	SlotTime     string `json:"slot_time" validate:"required"`
	Participants int    `json:"participants" validate:"required,min=1"`
	ContactName  string `json:"contact_name" validate:"required,max=255"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone" validate:"max=50"`
	ChildAge     string `json:"child_age" validate:"max=20"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

// Response DTOs

type BookingResponse struct {
	ID           uuid.UUID         `json:"id"`
	BookingCode  string            `json:"booking_code"`
	ActivityID   uuid.UUID         `json:"activity_id"`
	CustomerID   uuid.UUID         `json:"customer_id"`
	SlotDate     string            `json:"slot_date"`
	SlotTime     string            `json:"slot_time"`
	Participants int               `json:"participants"`
	Status       string            `json:"status"`
	ContactName  string            `json:"contact_name"`
	ContactEmail string            `json:"contact_email"`
	ContactPhone string            `json:"contact_phone,omitempty"`
	ChildAge     string            `json:"child_age,omitempty"`
	Activity     *ActivityResponse `json:"activity,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
