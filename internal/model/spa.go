package model

import (
	"time"

	"github.com/google/uuid"
)

// Spa is the tenant entity. Every booking, sale and invoice is scoped to one spa.
type Spa struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug            string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Currency        string    `gorm:"type:varchar(3);not null;default:'AED'" json:"currency"`
	TRN             string    `gorm:"type:varchar(20)" json:"trn"` // Tax Registration Number, empty until registered
	VATRegistered   bool      `gorm:"not null;default:false" json:"vat_registered"`
	VATNotifiedYear *int      `gorm:"type:int" json:"vat_notified_year"` // last calendar year a threshold notification was sent
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
