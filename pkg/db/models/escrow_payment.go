package models

import (
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
)

// EscrowPayment mirrors the provider-side staged payment for a job.
type EscrowPayment struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	JobID           uuid.UUID           `gorm:"column:job_id;type:uuid;not null;uniqueIndex"`
	ClientID        uuid.UUID           `gorm:"column:client_id;type:uuid;not null;index"`
	AmountCents     int64               `gorm:"column:amount_cents;not null"`
	Currency        string              `gorm:"column:currency;type:text;not null;default:'USD'"`
	SquarePaymentID *string             `gorm:"column:square_payment_id;uniqueIndex"`
	Status          enums.PaymentStatus `gorm:"column:status;type:payment_status;not null;default:'pending'"`
	ReleasedAt      *time.Time          `gorm:"column:released_at"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
