package converter

import (
	"activity-booking-service/internal/delivery/dto"
	"activity-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:           booking.ID,
		BookingCode:  booking.BookingCode,
		ActivityID:   booking.ActivityID,
		CustomerID:   booking.CustomerID,
		SlotDate:     booking.SlotDate.Format("2006-01-02"),
		SlotTime:     booking.SlotTime,
		Participants: booking.Participants,
		Status:       string(booking.Status),
		ContactName:  booking.ContactName,
		ContactEmail: booking.ContactEmail,
		ContactPhone: booking.ContactPhone,
		ChildAge:     booking.ChildAge,
		CreatedAt:    booking.CreatedAt,
		UpdatedAt:    booking.UpdatedAt,
	}

	// Include activity info if preloaded
	if booking.Activity.ID != uuid.Nil {
		response.Activity = ActivityToResponse(&booking.Activity)
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
