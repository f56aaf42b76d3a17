package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleAssignment links a vehicle, a job, and an agent. The assignment is
// open while ReturnedAt is null; a vehicle has at most one open assignment.
type VehicleAssignment struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleID    uuid.UUID  `gorm:"column:vehicle_id;type:uuid;not null;index"`
	JobID        uuid.UUID  `gorm:"column:job_id;type:uuid;not null;index"`
	AgentID      uuid.UUID  `gorm:"column:agent_id;type:uuid;not null;index"`
	AssignedAt   time.Time  `gorm:"column:assigned_at;autoCreateTime"`
	ReturnedAt   *time.Time `gorm:"column:returned_at"`
	StartMileage *int       `gorm:"column:start_mileage"`
	EndMileage   *int       `gorm:"column:end_mileage"`
	StartFuel    *int       `gorm:"column:start_fuel"`
	EndFuel      *int       `gorm:"column:end_fuel"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
