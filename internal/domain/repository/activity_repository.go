package repository

import (
	"context"

	"activity-booking-service/internal/domain/entity"

	"github.com/google/uuid"
)

// ActivityFilter narrows activity listings. Zero value lists everything.
type ActivityFilter struct {
	Category     string
	City         string
	FeaturedOnly bool
}

// ActivityRepository defines the persistence contract for activities
type ActivityRepository interface {
	// Create persists a new activity
	Create(ctx context.Context, activity *entity.Activity) error

	// FindByID retrieves an activity by its identifier, nil if absent
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error)

	// FindAll retrieves activities matching the filter, newest first
	FindAll(ctx context.Context, filter ActivityFilter) ([]entity.Activity, error)

	// FindByProviderID retrieves all activities owned by a provider
	FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]entity.Activity, error)

	// Update persists changes to an existing activity
	Update(ctx context.Context, activity *entity.Activity) error

	// Delete removes an activity
	Delete(ctx context.Context, id uuid.UUID) error
}
