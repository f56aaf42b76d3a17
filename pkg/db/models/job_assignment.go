package models

import (
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
)

// JobAssignment links a job to an agent. Unique per (job, agent): the same row
// is reused for interest expression and formal assignment.
type JobAssignment struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	JobID     uuid.UUID              `gorm:"column:job_id;type:uuid;not null;uniqueIndex:uq_job_assignments_job_agent"`
	AgentID   uuid.UUID              `gorm:"column:agent_id;type:uuid;not null;uniqueIndex:uq_job_assignments_job_agent"`
	Status    enums.AssignmentStatus `gorm:"column:status;type:assignment_status;not null;default:'assigned'"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
