package repository

import (
	"context"
	"time"

	"spa-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleListFilter narrows product sale listings. Tenant scoping goes through
// the selling staff member.
type SaleListFilter struct {
	SpaID    *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

type SaleRepository interface {
	Create(ctx context.Context, sale *model.ProductSale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductSale, error)
	List(ctx context.Context, filter SaleListFilter) ([]model.ProductSale, int64, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *model.ProductSale) error {
	return GetDB(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductSale, error) {
	var sale model.ProductSale
	if err := GetDB(ctx, r.db).Preload("Product").Preload("Seller").First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, filter SaleListFilter) ([]model.ProductSale, int64, error) {
	var sales []model.ProductSale
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if filter.SpaID != nil {
			q = q.Joins("JOIN staffs ON staffs.id = product_sales.sold_by").
				Where("staffs.spa_id = ?", *filter.SpaID)
		}
		if filter.DateFrom != nil {
			q = q.Where("product_sales.sale_date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			q = q.Where("product_sales.sale_date <= ?", *filter.DateTo)
		}
		return q
	}

	if err := apply(db.Model(&model.ProductSale{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := apply(db.Model(&model.ProductSale{})).Preload("Product").Preload("Seller").
		Order("product_sales.sale_date desc").Offset(offset).Limit(filter.Limit).Find(&sales).Error; err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

func (r *saleRepository) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// AdjustStock applies a relative stock change, refusing to go negative.
func (r *saleRepository) AdjustStock(ctx context.Context, productID uuid.UUID, delta int) error {
	result := GetDB(ctx, r.db).Model(&model.Product{}).
		Where("id = ? AND stock_qty + ? >= 0", productID, delta).
		Update("stock_qty", gorm.Expr("stock_qty + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
