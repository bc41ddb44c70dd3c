package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus enum constants
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCompleted = "COMPLETED"
	BookingCancelled = "CANCELLED"
)

// Booking is one customer appointment at a spa, possibly covering several
// treatments (one BookingItem per priced line).
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	SpaID         uuid.UUID     `gorm:"type:uuid;not null;index" json:"spa_id"`
	Spa           *Spa          `gorm:"foreignKey:SpaID" json:"spa,omitempty"`
	CustomerName  string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string        `gorm:"type:varchar(20)" json:"customer_phone"`
	BookingDate   time.Time     `gorm:"not null;index" json:"booking_date"`
	Status        string        `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Note          string        `gorm:"type:text" json:"note"`
	Items         []BookingItem `gorm:"foreignKey:BookingID" json:"items,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// BookingItem is one priced line of a booking. Price is tax-inclusive;
// NetAmount and VATAmount are split out at write time so that
// net + vat == price holds on every stored row.
type BookingItem struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"booking_id"`
	ServiceID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"service_id"`
	Service    *Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	StaffID    *uuid.UUID       `gorm:"type:uuid;index" json:"staff_id"` // assigned professional, nullable
	Price      decimal.Decimal  `gorm:"type:decimal(18,2);not null" json:"price"`
	NetAmount  *decimal.Decimal `gorm:"type:decimal(18,2)" json:"net_amount"`
	VATAmount  *decimal.Decimal `gorm:"type:decimal(18,2)" json:"vat_amount"`
	TaxCode    string           `gorm:"type:varchar(2);not null;default:'SR';index" json:"tax_code"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
