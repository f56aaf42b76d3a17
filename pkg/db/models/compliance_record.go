package models

import (
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
)

// ComplianceRecord tracks a verification artifact for a user. Terminal
// background-check statuses propagate to the owning agent profile.
type ComplianceRecord struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	Type        enums.ComplianceType   `gorm:"column:type;type:compliance_type;not null"`
	Status      enums.ComplianceStatus `gorm:"column:status;type:compliance_status;not null;default:'pending'"`
	DocumentURL *string                `gorm:"column:document_url"`
	ExpiryDate  *time.Time             `gorm:"column:expiry_date"`
	Notes       *string                `gorm:"column:notes"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
