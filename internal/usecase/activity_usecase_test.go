package usecase

import (
	"context"
	"io"
	"testing"

	"activity-booking-service/internal/delivery/dto"
	"activity-booking-service/internal/domain/entity"
	"activity-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityUsecase(activities ...entity.Activity) (ActivityUsecase, *fakeActivityRepo, *fakeAuditService) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := newFakeActivityRepo(activities...)
	audit := &fakeAuditService{}
	return NewActivityUsecase(log, repo, audit), repo, audit
}

func createRequest() *dto.CreateActivityRequest {
	return &dto.CreateActivityRequest{
		Name:     "Toddler Gym",
		Category: "sports",
		City:     "Leeds",
		Capacity: 8,
		Days:     []string{"Saturday", "Sunday"},
		Times:    []string{"09:00", "11:00"},
	}
}

func TestCreateActivity(t *testing.T) {
	t.Run("provider creates activity", func(t *testing.T) {
		uc, repo, audit := newActivityUsecase()
		provider := entity.Actor{ID: uuid.New(), Role: entity.RoleProvider}

		resp, err := uc.CreateActivity(context.Background(), provider, createRequest())
		require.NoError(t, err)

		assert.Equal(t, provider.ID, resp.ProviderID)
		assert.Equal(t, "upcoming", resp.Status)
		assert.Equal(t, 8, resp.Capacity)

		stored, err := repo.FindByID(context.Background(), resp.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Len(t, audit.recorded(), 1)
	})

	t.Run("customer rejected", func(t *testing.T) {
		uc, _, _ := newActivityUsecase()
		actor := entity.Actor{ID: uuid.New(), Role: entity.RoleCustomer}

		_, err := uc.CreateActivity(context.Background(), actor, createRequest())
		assert.ErrorIs(t, err, entity.ErrWrongRole)
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		uc, _, _ := newActivityUsecase()

		_, err := uc.CreateActivity(context.Background(), entity.Anonymous(), createRequest())
		assert.ErrorIs(t, err, entity.ErrUnauthenticated)
	})

	t.Run("bad weekday name", func(t *testing.T) {
		uc, _, _ := newActivityUsecase()
		provider := entity.Actor{ID: uuid.New(), Role: entity.RoleProvider}

		req := createRequest()
		req.Days = []string{"Funday"}
		_, err := uc.CreateActivity(context.Background(), provider, req)
		assert.ErrorIs(t, err, ErrInvalidWeekday)
	})

	t.Run("bad time format", func(t *testing.T) {
		uc, _, _ := newActivityUsecase()
		provider := entity.Actor{ID: uuid.New(), Role: entity.RoleProvider}

		req := createRequest()
		req.Times = []string{"9am"}
		_, err := uc.CreateActivity(context.Background(), provider, req)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})
}

func TestListActivities_Filter(t *testing.T) {
	uc, _, _ := newActivityUsecase(
		entity.Activity{ID: uuid.New(), Name: "Swim", Category: "water", City: "Leeds", Featured: true},
		entity.Activity{ID: uuid.New(), Name: "Gym", Category: "sports", City: "Leeds"},
		entity.Activity{ID: uuid.New(), Name: "Music", Category: "arts", City: "York"},
	)

	all, err := uc.ListActivities(context.Background(), repository.ActivityFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	leeds, err := uc.ListActivities(context.Background(), repository.ActivityFilter{City: "Leeds"})
	require.NoError(t, err)
	assert.Equal(t, 2, leeds.Total)

	featured, err := uc.ListActivities(context.Background(), repository.ActivityFilter{FeaturedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, featured.Total)
}

func TestUpdateActivity(t *testing.T) {
	providerID := uuid.New()
	base := entity.Activity{
		ID:         uuid.New(),
		ProviderID: providerID,
		Name:       "Toddler Gym",
		Capacity:   8,
		Days:       []string{"Saturday"},
		Times:      []string{"09:00"},
		Status:     entity.ActivityStatusUpcoming,
	}

	t.Run("owner patches fields", func(t *testing.T) {
		uc, repo, _ := newActivityUsecase(base)
		owner := entity.Actor{ID: providerID, Role: entity.RoleProvider}

		capacity := 12
		resp, err := uc.UpdateActivity(context.Background(), owner, base.ID, &dto.UpdateActivityRequest{
			Capacity: &capacity,
			Status:   "ongoing",
		})
		require.NoError(t, err)
		assert.Equal(t, 12, resp.Capacity)
		assert.Equal(t, "ongoing", resp.Status)

		// Untouched fields survive.
		stored, _ := repo.FindByID(context.Background(), base.ID)
		assert.Equal(t, "Toddler Gym", stored.Name)
		assert.Equal(t, []string{"Saturday"}, stored.Days)
	})

	t.Run("schedule revalidated on patch", func(t *testing.T) {
		uc, _, _ := newActivityUsecase(base)
		owner := entity.Actor{ID: providerID, Role: entity.RoleProvider}

		_, err := uc.UpdateActivity(context.Background(), owner, base.ID, &dto.UpdateActivityRequest{
			Times: []string{"25:00"},
		})
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})

	t.Run("foreign provider rejected", func(t *testing.T) {
		uc, _, _ := newActivityUsecase(base)
		other := entity.Actor{ID: uuid.New(), Role: entity.RoleProvider}

		_, err := uc.UpdateActivity(context.Background(), other, base.ID, &dto.UpdateActivityRequest{Name: "Hijacked"})
		assert.ErrorIs(t, err, entity.ErrWrongRole)
	})

	t.Run("admin may update any activity", func(t *testing.T) {
		uc, _, _ := newActivityUsecase(base)
		admin := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}

		resp, err := uc.UpdateActivity(context.Background(), admin, base.ID, &dto.UpdateActivityRequest{Name: "Renamed"})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", resp.Name)
	})

	t.Run("missing activity", func(t *testing.T) {
		uc, _, _ := newActivityUsecase()
		admin := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}

		_, err := uc.UpdateActivity(context.Background(), admin, uuid.New(), &dto.UpdateActivityRequest{})
		assert.ErrorIs(t, err, ErrActivityNotFound)
	})
}

func TestDeleteActivity(t *testing.T) {
	providerID := uuid.New()
	base := entity.Activity{ID: uuid.New(), ProviderID: providerID, Name: "Toddler Gym"}

	t.Run("owner deletes", func(t *testing.T) {
		uc, repo, audit := newActivityUsecase(base)
		owner := entity.Actor{ID: providerID, Role: entity.RoleProvider}

		require.NoError(t, uc.DeleteActivity(context.Background(), owner, base.ID))

		stored, _ := repo.FindByID(context.Background(), base.ID)
		assert.Nil(t, stored)
		assert.Len(t, audit.recorded(), 1)
	})

	t.Run("customer rejected", func(t *testing.T) {
		uc, _, _ := newActivityUsecase(base)
		actor := entity.Actor{ID: uuid.New(), Role: entity.RoleCustomer}

		err := uc.DeleteActivity(context.Background(), actor, base.ID)
		assert.ErrorIs(t, err, entity.ErrWrongRole)
	})
}

func TestGetProviderActivities(t *testing.T) {
	providerID := uuid.New()
	uc, _, _ := newActivityUsecase(
		entity.Activity{ID: uuid.New(), ProviderID: providerID, Name: "A"},
		entity.Activity{ID: uuid.New(), ProviderID: providerID, Name: "B"},
		entity.Activity{ID: uuid.New(), ProviderID: uuid.New(), Name: "C"},
	)

	provider := entity.Actor{ID: providerID, Role: entity.RoleProvider}
	resp, err := uc.GetProviderActivities(context.Background(), provider)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	_, err = uc.GetProviderActivities(context.Background(), entity.Actor{ID: uuid.New(), Role: entity.RoleCustomer})
	assert.ErrorIs(t, err, entity.ErrWrongRole)
}
