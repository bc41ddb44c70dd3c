package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a professional employed by a spa. Product sales are scoped to a
// tenant through the selling staff member.
type Staff struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SpaID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"spa_id"`
	Spa         *Spa       `gorm:"foreignKey:SpaID" json:"spa,omitempty"`
	UserID      *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // optional back-office login
	DisplayName string     `gorm:"type:varchar(255);not null" json:"display_name"`
	Title       string     `gorm:"type:varchar(100)" json:"title"` // e.g. "Massage Therapist"
	Active      bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
