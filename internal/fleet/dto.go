package fleet

import (
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/google/uuid"
)

// AddVehicleInput registers a vehicle under the calling PPO's fleet.
type AddVehicleInput struct {
	Make         string `json:"make" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Year         int    `json:"year" validate:"required,gte=1950"`
	LicensePlate string `json:"license_plate" validate:"required"`
	Mileage      *int   `json:"mileage" validate:"omitempty,gte=0"`
	FuelLevel    *int   `json:"fuel_level" validate:"omitempty,gte=0,lte=100"`
}

// AssignInput hands a vehicle to an agent for a job.
type AssignInput struct {
	VehicleID    uuid.UUID
	PpoID        uuid.UUID
	JobID        uuid.UUID `json:"job_id" validate:"required"`
	AgentID      uuid.UUID `json:"agent_id" validate:"required"`
	StartMileage *int      `json:"start_mileage" validate:"omitempty,gte=0"`
	StartFuel    *int      `json:"start_fuel" validate:"omitempty,gte=0,lte=100"`
}

// ReturnInput closes the vehicle's open assignment.
type ReturnInput struct {
	VehicleID  uuid.UUID
	CallerID   uuid.UUID
	EndMileage *int `json:"end_mileage" validate:"omitempty,gte=0"`
	EndFuel    *int `json:"end_fuel" validate:"omitempty,gte=0,lte=100"`
}

// List is a paginated fleet listing.
type List struct {
	Vehicles []models.FleetVehicle `json:"vehicles"`
	Total    int64                 `json:"total"`
}
