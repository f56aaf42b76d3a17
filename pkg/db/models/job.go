package models

import (
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Job represents a security staffing engagement posted by a client. The time
// window is half-open: [StartTime, EndTime).
type Job struct {
	ID                     uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID               uuid.UUID             `gorm:"column:client_id;type:uuid;not null;index"`
	PpoID                  *uuid.UUID            `gorm:"column:ppo_id;type:uuid;index"`
	Title                  string                `gorm:"column:title;not null"`
	Description            *string               `gorm:"column:description"`
	Address                *string               `gorm:"column:address"`
	Location               *types.GeographyPoint `gorm:"column:location;type:geography(Point,4326)"`
	StartTime              time.Time             `gorm:"column:start_time;not null"`
	EndTime                time.Time             `gorm:"column:end_time;not null"`
	RequiredCertifications pq.StringArray        `gorm:"column:required_certifications;type:text[];not null;default:ARRAY[]::text[]"`
	HourlyRate             decimal.Decimal       `gorm:"column:hourly_rate;type:numeric(10,2);not null"`
	AgentsNeeded           int                   `gorm:"column:agents_needed;not null;default:1"`
	Urgency                enums.JobUrgency      `gorm:"column:urgency;type:job_urgency;not null;default:'normal'"`
	Status                 enums.JobStatus       `gorm:"column:status;type:job_status;not null;default:'open'"`
	Assignments            []JobAssignment       `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
