package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSale is one over-the-counter retail transaction. The tenant is
// derived from the selling staff member (staff.spa_id), not stored directly.
type ProductSale struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SoldBy    uuid.UUID        `gorm:"type:uuid;not null;index" json:"sold_by"`
	Seller    *Staff           `gorm:"foreignKey:SoldBy" json:"seller,omitempty"`
	SaleDate  time.Time        `gorm:"not null;index" json:"sale_date"`
	Quantity  int              `gorm:"not null;default:1" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_price"` // tax-inclusive
	NetAmount  *decimal.Decimal `gorm:"type:decimal(18,2)" json:"net_amount"`
	VATAmount  *decimal.Decimal `gorm:"type:decimal(18,2)" json:"vat_amount"`
	TaxCode    string           `gorm:"type:varchar(2);not null;default:'SR';index" json:"tax_code"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
