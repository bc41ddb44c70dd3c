package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateBooking      = "CREATE_BOOKING"
	ActionUpdateBooking      = "UPDATE_BOOKING"
	ActionCancelBooking      = "CANCEL_BOOKING"
	ActionRecordProductSale  = "RECORD_PRODUCT_SALE"
	ActionPurchaseLoyalty    = "PURCHASE_LOYALTY_CARD"
	ActionRedeemLoyalty      = "REDEEM_LOYALTY_SESSION"
	ActionIssueInvoice       = "ISSUE_INVOICE"
	ActionVoidInvoice        = "VOID_INVOICE"
	ActionVATThresholdNotice = "VAT_THRESHOLD_NOTICE"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nullable for system-generated entries
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
