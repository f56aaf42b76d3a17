package models

import (
	"time"

	"github.com/google/uuid"
)

// PpoProfile describes a private protection officer company.
type PpoProfile struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	CompanyName   string    `gorm:"column:company_name;not null"`
	LicenseNumber *string   `gorm:"column:license_number"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
