package repository

import (
	"context"

	"spa-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoyaltyRepository interface {
	Create(ctx context.Context, card *model.LoyaltyCard) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LoyaltyCard, error)
	List(ctx context.Context, spaID *uuid.UUID, page, limit int) ([]model.LoyaltyCard, int64, error)
	Update(ctx context.Context, card *model.LoyaltyCard) error
}

type loyaltyRepository struct {
	db *gorm.DB
}

func NewLoyaltyRepository(db *gorm.DB) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) Create(ctx context.Context, card *model.LoyaltyCard) error {
	return GetDB(ctx, r.db).Create(card).Error
}

func (r *loyaltyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LoyaltyCard, error) {
	var card model.LoyaltyCard
	if err := GetDB(ctx, r.db).Preload("Service").First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *loyaltyRepository) List(ctx context.Context, spaID *uuid.UUID, page, limit int) ([]model.LoyaltyCard, int64, error) {
	var cards []model.LoyaltyCard
	var total int64

	db := GetDB(ctx, r.db)
	apply := func(q *gorm.DB) *gorm.DB {
		if spaID != nil {
			q = q.Joins("JOIN services ON services.id = loyalty_cards.service_id").
				Where("services.spa_id = ?", *spaID)
		}
		return q
	}

	if err := apply(db.Model(&model.LoyaltyCard{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := apply(db.Model(&model.LoyaltyCard{})).Preload("Service").
		Order("loyalty_cards.purchase_date desc").Offset(offset).Limit(limit).Find(&cards).Error; err != nil {
		return nil, 0, err
	}

	return cards, total, nil
}

func (r *loyaltyRepository) Update(ctx context.Context, card *model.LoyaltyCard) error {
	return GetDB(ctx, r.db).Save(card).Error
}
