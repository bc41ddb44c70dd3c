package repository

import (
	"context"

	"spa-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpaRepository interface {
	Create(ctx context.Context, spa *model.Spa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Spa, error)
	List(ctx context.Context, page, limit int) ([]model.Spa, int64, error)
	Update(ctx context.Context, spa *model.Spa) error
	SetVATNotifiedYear(ctx context.Context, id uuid.UUID, year int) error
}

type spaRepository struct {
	db *gorm.DB
}

func NewSpaRepository(db *gorm.DB) SpaRepository {
	return &spaRepository{db: db}
}

func (r *spaRepository) Create(ctx context.Context, spa *model.Spa) error {
	return GetDB(ctx, r.db).Create(spa).Error
}

func (r *spaRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Spa, error) {
	var spa model.Spa
	if err := GetDB(ctx, r.db).First(&spa, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &spa, nil
}

func (r *spaRepository) List(ctx context.Context, page, limit int) ([]model.Spa, int64, error) {
	var spas []model.Spa
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Spa{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name").Offset(offset).Limit(limit).Find(&spas).Error; err != nil {
		return nil, 0, err
	}

	return spas, total, nil
}

func (r *spaRepository) Update(ctx context.Context, spa *model.Spa) error {
	return GetDB(ctx, r.db).Save(spa).Error
}

// SetVATNotifiedYear stamps the calendar year a threshold notification went
// out, so at most one fires per spa per year.
func (r *spaRepository) SetVATNotifiedYear(ctx context.Context, id uuid.UUID, year int) error {
	return GetDB(ctx, r.db).Model(&model.Spa{}).Where("id = ?", id).
		Update("vat_notified_year", year).Error
}
