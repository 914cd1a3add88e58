package repository

import (
	"context"
	"errors"
	"time"

	"activity-booking-service/internal/domain/entity"
	domainRepo "activity-booking-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Preload("Activity").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.WithContext(ctx).Preload("Activity").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByActivityID(ctx context.Context, activityID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.WithContext(ctx).Preload("Activity").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) SlotOccupancy(ctx context.Context, activityID uuid.UUID, slotDate time.Time, slotTime string) (int, error) {
	var seats int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Select("COALESCE(SUM(participants), 0)").
		Where("activity_id = ? AND slot_date = ? AND slot_time = ? AND status != ?",
			activityID, slotDate.Format("2006-01-02"), slotTime, entity.BookingStatusCancelled).
		Scan(&seats).Error
	if err != nil {
		return 0, err
	}
	return int(seats), nil
}

func (r *bookingRepository) SlotUsages(ctx context.Context, from time.Time, limit, offset int) ([]domainRepo.SlotUsage, error) {
	var usages []domainRepo.SlotUsage
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Select(`
			bookings.activity_id,
			bookings.slot_date,
			bookings.slot_time,
			COALESCE(SUM(CASE WHEN bookings.status != ? THEN bookings.participants ELSE 0 END), 0) as seats,
			activities.capacity
		`, string(entity.BookingStatusCancelled)).
		Joins("JOIN activities ON activities.id = bookings.activity_id").
		Where("bookings.slot_date >= ?", from.Format("2006-01-02")).
		Group("bookings.activity_id, bookings.slot_date, bookings.slot_time, activities.capacity").
		Order("bookings.activity_id, bookings.slot_date, bookings.slot_time").
		Limit(limit).
		Offset(offset).
		Scan(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}

// UpdateStatus guards the transition with a WHERE clause on the expected
// current status so two racing callers cannot both succeed.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}
