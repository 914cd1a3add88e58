package handler

import (
	"encoding/json"
	"net/http"

	"activity-booking-service/internal/delivery/dto"
	"activity-booking-service/internal/delivery/http/middleware"
	"activity-booking-service/internal/domain/entity"
	"activity-booking-service/internal/service"
	"activity-booking-service/internal/usecase"
	"activity-booking-service/pkg/response"
	"activity-booking-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		actor = entity.Anonymous()
	}

	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.SubmitBooking(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrActivityNotFound:
			response.NotFound(w, "Activity not found")
		case usecase.ErrActivityNotBookable:
			response.Conflict(w, "Activity is not accepting bookings")
		case usecase.ErrInvalidSlot:
			response.BadRequest(w, "Requested date and time are not in the activity's schedule")
		case usecase.ErrInvalidParticipants:
			response.BadRequest(w, "Participant count must be at least 1")
		case entity.ErrUnauthenticated:
			response.Unauthorized(w, "Please sign in to book")
		case entity.ErrWrongRole:
			response.Forbidden(w, "Only customers can create bookings")
		case service.ErrCapacityExceeded:
			response.Conflict(w, "This slot is fully booked")
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req dto.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.ChangeStatus(r.Context(), actor, bookingID, entity.BookingStatus(req.Status))
	if err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case entity.ErrInvalidTransition:
			response.Conflict(w, "Booking status cannot change that way")
		case entity.ErrUnauthenticated:
			response.Unauthorized(w, "")
		case entity.ErrWrongRole:
			response.Forbidden(w, "You are not allowed to change this booking")
		default:
			response.InternalServerError(w, "Failed to update booking status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated", booking)
}

func (h *BookingHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookings, err := h.bookingUsecase.GetMyBookings(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetActivityBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	activityID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid activity ID")
		return
	}

	bookings, err := h.bookingUsecase.GetActivityBookings(r.Context(), actor, activityID)
	if err != nil {
		switch err {
		case usecase.ErrActivityNotFound:
			response.NotFound(w, "Activity not found")
		case entity.ErrWrongRole:
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to get bookings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	bookings, err := h.bookingUsecase.GetAllBookings(r.Context(), actor)
	if err != nil {
		switch err {
		case entity.ErrWrongRole:
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to get bookings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}
