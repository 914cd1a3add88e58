package converter

import (
	"activity-booking-service/internal/delivery/dto"
	"activity-booking-service/internal/domain/entity"
)

// ActivityToResponse converts an Activity entity to ActivityResponse DTO
func ActivityToResponse(activity *entity.Activity) *dto.ActivityResponse {
	if activity == nil {
		return nil
	}

	return &dto.ActivityResponse{
		ID:          activity.ID,
		ProviderID:  activity.ProviderID,
		Name:        activity.Name,
		Description: activity.Description,
		Category:    activity.Category,
		AgeRange:    activity.AgeRange,
		Address:     activity.Address,
		City:        activity.City,
		Postcode:    activity.Postcode,
		Price:       activity.Price,
		Image:       activity.Image,
		Featured:    activity.Featured,
		Capacity:    activity.Capacity,
		Days:        activity.Days,
		Times:       activity.Times,
		Status:      string(activity.Status),
		CreatedAt:   activity.CreatedAt,
		UpdatedAt:   activity.UpdatedAt,
	}
}

// ActivitiesToResponses converts a slice of Activity entities to slice of ActivityResponse DTOs
func ActivitiesToResponses(activities []entity.Activity) []dto.ActivityResponse {
	responses := make([]dto.ActivityResponse, len(activities))
	for i, activity := range activities {
		resp := ActivityToResponse(&activity)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
