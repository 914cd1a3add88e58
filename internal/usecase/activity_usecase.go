package usecase

import (
	"context"
	"errors"
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
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidWeekday    = errors.New("invalid weekday name")
)

var weekdayNames = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
	"Sunday":    true,
}

type ActivityUsecase interface {
	CreateActivity(ctx context.Context, actor entity.Actor, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error)
	GetActivity(ctx context.Context, activityID uuid.UUID) (*dto.ActivityResponse, error)
	ListActivities(ctx context.Context, filter repository.ActivityFilter) (*dto.ActivityListResponse, error)
	GetProviderActivities(ctx context.Context, actor entity.Actor) (*dto.ActivityListResponse, error)
	UpdateActivity(ctx context.Context, actor entity.Actor, activityID uuid.UUID, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, error)
	DeleteActivity(ctx context.Context, actor entity.Actor, activityID uuid.UUID) error
}

type activityUsecase struct {
	log          *logrus.Logger
	activityRepo repository.ActivityRepository
	audit        service.AuditService
}

func NewActivityUsecase(log *logrus.Logger, activityRepo repository.ActivityRepository, audit service.AuditService) ActivityUsecase {
	return &activityUsecase{
		log:          log,
		activityRepo: activityRepo,
		audit:        audit,
	}
}

func (u *activityUsecase) CreateActivity(ctx context.Context, actor entity.Actor, req *dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, entity.ErrUnauthenticated
	}
	if !actor.Role.IsStaff() {
		return nil, entity.ErrWrongRole
	}

	if err := validateSchedule(req.Days, req.Times); err != nil {
		return nil, err
	}

	activity := &entity.Activity{
		ProviderID:  actor.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		AgeRange:    req.AgeRange,
		Address:     req.Address,
		City:        req.City,
		Postcode:    req.Postcode,
		Price:       req.Price,
		Image:       req.Image,
		Featured:    req.Featured,
		Capacity:    req.Capacity,
		Days:        req.Days,
		Times:       req.Times,
		Status:      entity.ActivityStatusUpcoming,
	}

	if err := u.activityRepo.Create(ctx, activity); err != nil {
		u.log.Warnf("Failed to create activity: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, actor, service.AuditActivityCreated, entity.JSON{
		"activity_id": activity.ID.String(),
		"name":        activity.Name,
	})

	return converter.ActivityToResponse(activity), nil
}

func (u *activityUsecase) GetActivity(ctx context.Context, activityID uuid.UUID) (*dto.ActivityResponse, error) {
	activity, err := u.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		u.log.Warnf("Failed to find activity %s: %+v", activityID, err)
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	return converter.ActivityToResponse(activity), nil
}

func (u *activityUsecase) ListActivities(ctx context.Context, filter repository.ActivityFilter) (*dto.ActivityListResponse, error) {
	activities, err := u.activityRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list activities: %+v", err)
		return nil, err
	}

	return &dto.ActivityListResponse{
		Activities: converter.ActivitiesToResponses(activities),
		Total:      len(activities),
	}, nil
}

func (u *activityUsecase) GetProviderActivities(ctx context.Context, actor entity.Actor) (*dto.ActivityListResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, entity.ErrUnauthenticated
	}
	if !actor.Role.IsStaff() {
		return nil, entity.ErrWrongRole
	}

	activities, err := u.activityRepo.FindByProviderID(ctx, actor.ID)
	if err != nil {
		u.log.Warnf("Failed to find activities for provider %s: %+v", actor.ID, err)
		return nil, err
	}

	return &dto.ActivityListResponse{
		Activities: converter.ActivitiesToResponses(activities),
		Total:      len(activities),
	}, nil
}

func (u *activityUsecase) UpdateActivity(ctx context.Context, actor entity.Actor, activityID uuid.UUID, req *dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	activity, err := u.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		u.log.Warnf("Failed to find activity %s: %+v", activityID, err)
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	if err := actor.CanManageActivity(activity); err != nil {
		return nil, err
	}

	if req.Name != "" {
		activity.Name = req.Name
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Category != nil {
		activity.Category = *req.Category
	}
	if req.AgeRange != nil {
		activity.AgeRange = *req.AgeRange
	}
	if req.Address != nil {
		activity.Address = *req.Address
	}
	if req.City != nil {
		activity.City = *req.City
	}
	if req.Postcode != nil {
		activity.Postcode = *req.Postcode
	}
	if req.Price != nil {
		activity.Price = *req.Price
	}
	if req.Image != nil {
		activity.Image = *req.Image
	}
	if req.Featured != nil {
		activity.Featured = *req.Featured
	}
	if req.Capacity != nil {
		activity.Capacity = *req.Capacity
	}
	if len(req.Days) > 0 || len(req.Times) > 0 {
		days := activity.Days
		times := activity.Times
		if len(req.Days) > 0 {
			days = req.Days
		}
		if len(req.Times) > 0 {
			times = req.Times
		}
		if err := validateSchedule(days, times); err != nil {
			return nil, err
		}
		activity.Days = days
		activity.Times = times
	}
	if req.Status != "" {
		activity.Status = entity.ActivityStatus(req.Status)
	}

	if err := u.activityRepo.Update(ctx, activity); err != nil {
		u.log.Warnf("Failed to update activity %s: %+v", activityID, err)
		return nil, err
	}

	u.audit.Record(ctx, actor, service.AuditActivityUpdated, entity.JSON{
		"activity_id": activity.ID.String(),
	})

	return converter.ActivityToResponse(activity), nil
}

func (u *activityUsecase) DeleteActivity(ctx context.Context, actor entity.Actor, activityID uuid.UUID) error {
	activity, err := u.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		u.log.Warnf("Failed to find activity %s: %+v", activityID, err)
		return err
	}
	if activity == nil {
		return ErrActivityNotFound
	}

	if err := actor.CanManageActivity(activity); err != nil {
		return err
	}

	if err := u.activityRepo.Delete(ctx, activityID); err != nil {
		u.log.Warnf("Failed to delete activity %s: %+v", activityID, err)
		return err
	}

	u.audit.Record(ctx, actor, service.AuditActivityDeleted, entity.JSON{
		"activity_id": activityID.String(),
	})

	return nil
}

// validateSchedule checks that every day is a weekday name and every time
// parses as HH:MM
func validateSchedule(days, times []string) error {
	for _, d := range days {
		if !weekdayNames[d] {
			return ErrInvalidWeekday
		}
	}
	for _, t := range times {
		if _, err := time.Parse("15:04", t); err != nil {
			return ErrInvalidTimeFormat
		}
	}
	return nil
}
