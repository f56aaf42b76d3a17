package models

import (
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// AgentProfile carries the matching-relevant attributes of an individual
// security agent.
type AgentProfile struct {
	ID                    uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID                uuid.UUID                `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Certifications        pq.StringArray           `gorm:"column:certifications;type:text[];not null;default:ARRAY[]::text[]"`
	ExperienceYears       int                      `gorm:"column:experience_years;not null;default:0"`
	HourlyRate            decimal.Decimal          `gorm:"column:hourly_rate;type:numeric(10,2);not null;default:0"`
	Location              *types.GeographyPoint    `gorm:"column:location;type:geography(Point,4326)"`
	AvailabilityStatus    enums.AvailabilityStatus `gorm:"column:availability_status;type:availability_status;not null;default:'offline'"`
	BackgroundCheckStatus enums.ComplianceStatus   `gorm:"column:background_check_status;type:compliance_status;not null;default:'pending'"`
	Rating                decimal.Decimal          `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	TotalJobs             int                      `gorm:"column:total_jobs;not null;default:0"`
	CreatedAt             time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
