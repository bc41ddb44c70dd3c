package repository

import (
	"context"

	"spa-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository covers the bookable services and retail products a spa offers.
type CatalogRepository interface {
	CreateService(ctx context.Context, svc *model.Service) error
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
	ListServices(ctx context.Context, spaID *uuid.UUID, page, limit int) ([]model.Service, int64, error)
	UpdateService(ctx context.Context, svc *model.Service) error
	CreateProduct(ctx context.Context, p *model.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, page, limit int) ([]model.Product, int64, error)
	CreateStaff(ctx context.Context, st *model.Staff) error
	GetStaff(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	ListStaff(ctx context.Context, spaID *uuid.UUID, page, limit int) ([]model.Staff, int64, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateService(ctx context.Context, svc *model.Service) error {
	return GetDB(ctx, r.db).Create(svc).Error
}

func (r *catalogRepository) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	var svc model.Service
	if err := GetDB(ctx, r.db).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *catalogRepository) ListServices(ctx context.Context, spaID *uuid.UUID, page, limit int) ([]model.Service, int64, error) {
	var services []model.Service
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if spaID != nil {
			q = q.Where("spa_id = ?", *spaID)
		}
		return q.Where("active = ?", true)
	}

	if err := apply(db.Model(&model.Service{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := apply(db.Model(&model.Service{})).
		Order("name").Offset(offset).Limit(limit).Find(&services).Error; err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

func (r *catalogRepository) UpdateService(ctx context.Context, svc *model.Service) error {
	return GetDB(ctx, r.db).Save(svc).Error
}

func (r *catalogRepository) CreateProduct(ctx context.Context, p *model.Product) error {
	return GetDB(ctx, r.db).Create(p).Error
}

func (r *catalogRepository) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context, page, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *catalogRepository) CreateStaff(ctx context.Context, st *model.Staff) error {
	return GetDB(ctx, r.db).Create(st).Error
}

func (r *catalogRepository) GetStaff(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var staff model.Staff
	if err := GetDB(ctx, r.db).First(&staff, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *catalogRepository) ListStaff(ctx context.Context, spaID *uuid.UUID, page, limit int) ([]model.Staff, int64, error) {
	var staff []model.Staff
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if spaID != nil {
			q = q.Where("spa_id = ?", *spaID)
		}
		return q.Where("active = ?", true)
	}

	if err := apply(db.Model(&model.Staff{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := apply(db.Model(&model.Staff{})).
		Order("display_name").Offset(offset).Limit(limit).Find(&staff).Error; err != nil {
		return nil, 0, err
	}

	return staff, total, nil
}
