package handler

import (
	"encoding/json"
	"net/http"

	"activity-booking-service/internal/delivery/dto"
	"activity-booking-service/internal/delivery/http/middleware"
	"activity-booking-service/internal/domain/entity"
	"activity-booking-service/internal/domain/repository"
	"activity-booking-service/internal/usecase"
	"activity-booking-service/pkg/response"
	"activity-booking-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ActivityHandler struct {
	activityUsecase usecase.ActivityUsecase
	validator       *validator.CustomValidator
}

func NewActivityHandler(activityUsecase usecase.ActivityUsecase, validator *validator.CustomValidator) *ActivityHandler {
	return &ActivityHandler{
		activityUsecase: activityUsecase,
		validator:       validator,
	}
}

func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	filter := repository.ActivityFilter{
		Category:     r.URL.Query().Get("category"),
		City:         r.URL.Query().Get("city"),
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
	}

	activities, err := h.activityUsecase.ListActivities(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list activities")
		return
	}

	response.Success(w, http.StatusOK, "Activities retrieved successfully", activities)
}

func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	activityID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid activity ID")
		return
	}

	activity, err := h.activityUsecase.GetActivity(r.Context(), activityID)
	if err != nil {
		switch err {
		case usecase.ErrActivityNotFound:
			response.NotFound(w, "Activity not found")
		default:
			response.InternalServerError(w, "Failed to get activity")
		}
		return
	}

	response.Success(w, http.StatusOK, "Activity retrieved successfully", activity)
}

func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	activity, err := h.activityUsecase.CreateActivity(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidWeekday:
			response.BadRequest(w, "Days must be full weekday names")
		case usecase.ErrInvalidTimeFormat:
			response.BadRequest(w, "Times must use the HH:MM format")
		case entity.ErrWrongRole:
			response.Forbidden(w, "Only providers can list activities")
		default:
			response.InternalServerError(w, "Failed to create activity")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Activity created successfully", activity)
}

func (h *ActivityHandler) GetProviderActivities(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	activities, err := h.activityUsecase.GetProviderActivities(r.Context(), actor)
	if err != nil {
		response.InternalServerError(w, "Failed to get activities")
		return
	}

	response.Success(w, http.StatusOK, "Activities retrieved successfully", activities)
}

func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
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

	var req dto.UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	activity, err := h.activityUsecase.UpdateActivity(r.Context(), actor, activityID, &req)
	if err != nil {
		switch err {
		case usecase.ErrActivityNotFound:
			response.NotFound(w, "Activity not found")
		case usecase.ErrInvalidWeekday:
			response.BadRequest(w, "Days must be full weekday names")
		case usecase.ErrInvalidTimeFormat:
			response.BadRequest(w, "Times must use the HH:MM format")
		case entity.ErrWrongRole:
			response.Forbidden(w, "You can only manage your own activities")
		default:
			response.InternalServerError(w, "Failed to update activity")
		}
		return
	}

	response.Success(w, http.StatusOK, "Activity updated successfully", activity)
}

func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
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

	if err := h.activityUsecase.DeleteActivity(r.Context(), actor, activityID); err != nil {
		switch err {
		case usecase.ErrActivityNotFound:
			response.NotFound(w, "Activity not found")
		case entity.ErrWrongRole:
			response.Forbidden(w, "You can only manage your own activities")
		default:
			response.InternalServerError(w, "Failed to delete activity")
		}
		return
	}

	response.Success(w, http.StatusOK, "Activity deleted successfully", nil)
}
