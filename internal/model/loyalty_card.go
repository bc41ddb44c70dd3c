package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoyaltyCard is a prepaid multi-session card for one service. The tenant is
// derived from the underlying service (services.spa_id).
type LoyaltyCard struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"service_id"`
	Service       *Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	CustomerName  string           `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string           `gorm:"type:varchar(20)" json:"customer_phone"`
	PurchaseDate  time.Time        `gorm:"not null;index" json:"purchase_date"`
	PurchasePrice decimal.Decimal  `gorm:"type:decimal(18,2);not null" json:"purchase_price"` // tax-inclusive
	NetAmount     *decimal.Decimal `gorm:"type:decimal(18,2)" json:"net_amount"`
	VATAmount     *decimal.Decimal `gorm:"type:decimal(18,2)" json:"vat_amount"`
	TaxCode       string           `gorm:"type:varchar(2);not null;default:'SR';index" json:"tax_code"`
	SessionsTotal int              `gorm:"not null" json:"sessions_total"`
	SessionsUsed  int              `gorm:"not null;default:0" json:"sessions_used"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}
