package jobs

import (
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput is the payload for posting a job.
type CreateInput struct {
	Title                  string                `json:"title" validate:"required"`
	Description            string                `json:"description"`
	Address                string                `json:"address"`
	Location               *types.GeographyPoint `json:"location"`
	StartTime              time.Time             `json:"start_time" validate:"required"`
	EndTime                time.Time             `json:"end_time" validate:"required"`
	RequiredCertifications []string              `json:"required_certifications"`
	HourlyRate             decimal.Decimal       `json:"hourly_rate" validate:"required"`
	AgentsNeeded           int                   `json:"agents_needed" validate:"gte=1"`
	Urgency                string                `json:"urgency"`
}

// Filters narrows job listings.
type Filters struct {
	Status   *enums.JobStatus
	ClientID *uuid.UUID
	PpoID    *uuid.UUID
}

// AssignPPOInput names the PPO taking over fulfillment of a job.
type AssignPPOInput struct {
	JobID    uuid.UUID
	ClientID uuid.UUID
	PpoID    uuid.UUID
}

// AssignAgentsInput replaces the job's agent roster.
type AssignAgentsInput struct {
	JobID    uuid.UUID
	PpoID    uuid.UUID
	AgentIDs []uuid.UUID
}

// RespondInput is an agent's accept/decline on its assignment.
type RespondInput struct {
	JobID   uuid.UUID
	AgentID uuid.UUID
	Accept  bool
}

// List is a paginated job listing.
type List struct {
	Jobs  []models.Job `json:"jobs"`
	Total int64        `json:"total"`
}
