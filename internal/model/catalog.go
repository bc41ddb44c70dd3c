package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a bookable treatment offered by a spa. Price is tax-inclusive.
type Service struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SpaID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"spa_id"`
	Spa             *Spa            `gorm:"foreignKey:SpaID" json:"spa,omitempty"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null;default:60" json:"duration_minutes"`
	TaxCode         string          `gorm:"type:varchar(2);not null;default:'SR'" json:"tax_code"`
	Active          bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Product is a retail item sold over the counter. RetailPrice is tax-inclusive.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SKU         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	RetailPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"retail_price"`
	StockQty    int             `gorm:"not null;default:0" json:"stock_qty"`
	TaxCode     string          `gorm:"type:varchar(2);not null;default:'SR'" json:"tax_code"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
