package repository

import (
	"context"
	"time"

	"spa-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingListFilter narrows booking listings for the back-office calendar.
type BookingListFilter struct {
	SpaID    *uuid.UUID
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	List(ctx context.Context, filter BookingListFilter) ([]model.Booking, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return GetDB(ctx, r.db).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var booking model.Booking
	if err := GetDB(ctx, r.db).Preload("Items").Preload("Items.Service").First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, filter BookingListFilter) ([]model.Booking, int64, error) {
	var bookings []model.Booking
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.SpaID != nil {
			q = q.Where("spa_id = ?", *filter.SpaID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.DateFrom != nil {
			q = q.Where("booking_date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			q = q.Where("booking_date <= ?", *filter.DateTo)
		}
		return q
	}

	if err := apply(db.Model(&model.Booking{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := apply(db.Preload("Items")).
		Order("booking_date desc").Offset(offset).Limit(filter.Limit).Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.Booking{}).Where("id = ?", id).Update("status", status).Error
}
