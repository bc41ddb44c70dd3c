package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus enum constants
const (
	InvoiceIssued = "ISSUED"
	InvoicePaid   = "PAID"
	InvoiceVoided = "VOIDED"
)

// Invoice is a tax invoice issued by a spa for a completed booking. Issued
// invoices are what count toward the annual VAT registration threshold.
type Invoice struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SpaID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"spa_id"`
	Spa         *Spa            `gorm:"foreignKey:SpaID" json:"spa,omitempty"`
	InvoiceNo   string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_no"`
	BookingID   *uuid.UUID      `gorm:"type:uuid;index" json:"booking_id"` // nullable for manually raised invoices
	IssueDate   time.Time       `gorm:"not null;index" json:"issue_date"`
	NetAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"net_amount"`
	VATAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"vat_amount"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"` // net + vat
	Status      string          `gorm:"type:varchar(20);not null;default:'ISSUED';index" json:"status"`
	Note        string          `gorm:"type:text" json:"note"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
